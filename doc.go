// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package parq provides an order-preserving parallel transformation
// pipeline over a striped bank of SPSC queues.
//
// A Parser converts values of an input type I into values of an output type
// O with a caller-supplied conversion function, using one worker goroutine
// per lane, while guaranteeing that Pop returns results in exactly the order
// the inputs were pushed. There is no global lock: each lane is a pair of
// single-producer/single-consumer queues, and the push and pop sides walk
// the lanes in lock-step round-robin.
//
// # Quick Start
//
//	itoa := func(n *int, s *string) { *s = strconv.Itoa(*n) }
//
//	p, err := parq.NewParser(itoa, 8, 4096)
//	if err != nil {
//	    // lane count must be a power of two
//	}
//
//	for i := range 1_000_000 {
//	    p.Push(&i)
//	}
//	p.StartDrain() // workers exit once their input lanes are empty
//	p.StopDrain()  // join
//
//	for range 1_000_000 {
//	    s, _ := p.Pop() // "0", "1", "2", ... in push order
//	    _ = s
//	}
//
// Builder form for non-default configuration:
//
//	p, err := parq.BuildParser(
//	    parq.New(4).InitCapacity(1024).Bounded().Logger(logger),
//	    convert,
//	)
//
// # Ordering
//
// The bank holds N input queues and N output queues, N a power of two. Push
// writes to input lane k and advances k by one modulo N; Pop mirrors this on
// the output lanes. Worker i moves elements from input lane i to output lane
// i one at a time. Because both cursors traverse the bank in the same
// round-robin order and every lane is FIFO, the k-th successful Pop returns
// f(v) for the k-th successfully pushed v.
//
// The guarantee requires the same discipline the queues do: at most one
// goroutine pushing and at most one popping at any time. The two roles may
// be the same goroutine, or two different goroutines running concurrently
// with the workers.
//
// # Worker Modes
//
// The Start variant fixes each worker's idle policy for its lifetime:
//
//	Start()        spin  — busy-wait on empty input; exit when Stop clears
//	                       the active flag. Lowest latency, one busy CPU
//	                       per idle lane.
//	StartDrain()   drain — exit on the first empty observation. For
//	                       throughput runs: push first, start, join.
//	StartSleep(d)  sleep — sleep d on empty input; exit when Stop clears
//	                       the active flag. For sparse workloads.
//
// Starting while workers are running returns ErrStarted. Stop joins all
// workers and is a no-op when none are running.
//
// # Queue Growth
//
// Each lane queue starts at the configured initial capacity and grows by
// linking ring segments of doubling size, so a workload can be staged
// entirely before the workers start. Bounded() freezes queues at their
// initial capacity instead; Push then returns ErrWouldBlock when the
// current lane is full, and the cursor stays put so a retry preserves
// ordering.
//
// # Error Handling
//
// Push and Pop return [ErrWouldBlock] when they cannot proceed. The error
// is sourced from [code.hybscloud.com/iox] for ecosystem consistency and is
// a control flow signal, not a failure:
//
//	parq.IsWouldBlock(err)  // true if lane full/empty
//	parq.IsSemantic(err)    // true if control flow signal
//	parq.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// A worker whose output lane is full retries with backoff until the popper
// frees the lane; outputs are never dropped. The retry is reported through
// the configured zap logger (no-op by default).
//
// # False Sharing
//
// The hot cursors are padded onto dedicated cache lines: the ring head and
// tail within every segment, and the bank's submit and receive indices.
// Collocating any of them degrades throughput by an order of magnitude;
// the padding is part of the design, not a tuning knob.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives but cannot
// observe happens-before relationships established through atomic memory
// orderings. The queue algorithm is correct under acquire-release semantics,
// yet the detector may report false positives on the buffer slots. Tests
// incompatible with race detection are excluded from race builds by a
// build constraint.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// backoff, [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, [code.hybscloud.com/spin] for CPU pause instructions in
// spin mode, and [go.uber.org/zap] for worker diagnostics.
package parq
