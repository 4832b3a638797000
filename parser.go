// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parq

import (
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"go.uber.org/zap"
)

// paddedIndex is a round-robin cursor occupying a full cache line, so the
// push-side and pop-side cursors never share a line with each other or with
// the queue bank.
type paddedIndex struct {
	val uint64
	_   padShort
}

// Parser is a fixed-width, order-preserving, parallel transformation
// pipeline.
//
// A single producer goroutine pushes I values, a bank of lane workers
// applies a ConvertFunc, and a single consumer goroutine pops O values in
// exactly the push order. Internally the parser keeps one input and one
// output SPSC queue per lane; pushes and pops walk the bank in lock-step
// round-robin, so global FIFO follows from each lane preserving its own
// order.
//
// Role discipline mirrors the queues: at most one goroutine may call Push
// and at most one may call Pop at any time (they may be the same goroutine).
// The parser owns the bank and the workers; values are copied in on Push and
// copied out on Pop.
type Parser[I, O any] struct {
	conv  ConvertFunc[I, O]
	in    []*SPSC[I]
	out   []*SPSC[O]
	mask  uint64
	lanes int
	log   *zap.Logger

	_       pad
	submit  paddedIndex // Owned by the pushing goroutine
	receive paddedIndex // Owned by the popping goroutine
	active  atomix.Bool
	_       pad

	wg      sync.WaitGroup
	running bool
}

// NewParser creates a parser with the given conversion function, lane count,
// and initial per-lane queue capacity.
//
// Returns ErrLaneCount if lanes is zero or not a power of two, ErrNilConvert
// if f is nil. Queue allocation failure surfaces as a runtime allocation
// panic, as with any Go slice.
func NewParser[I, O any](f ConvertFunc[I, O], lanes, initCapacity int) (*Parser[I, O], error) {
	return BuildParser(New(lanes).InitCapacity(initCapacity), f)
}

// NewParserDefault creates a parser with one lane per available CPU (rounded
// up to a power of two) and the default initial capacity.
func NewParserDefault[I, O any](f ConvertFunc[I, O]) (*Parser[I, O], error) {
	return BuildParser(Default(), f)
}

// BuildParser creates a parser from builder configuration plus the
// conversion function.
func BuildParser[I, O any](b *Builder, f ConvertFunc[I, O]) (*Parser[I, O], error) {
	if f == nil {
		return nil, ErrNilConvert
	}
	opts := b.opts
	if !isPow2(opts.lanes) {
		return nil, ErrLaneCount
	}

	logger := opts.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Parser[I, O]{
		conv:  f,
		in:    make([]*SPSC[I], opts.lanes),
		out:   make([]*SPSC[O], opts.lanes),
		mask:  uint64(opts.lanes - 1),
		lanes: opts.lanes,
		log:   logger,
	}
	for i := range opts.lanes {
		if opts.bounded {
			p.in[i] = NewSPSCBounded[I](opts.initCap)
			p.out[i] = NewSPSCBounded[O](opts.initCap)
		} else {
			p.in[i] = NewSPSC[I](opts.initCap)
			p.out[i] = NewSPSC[O](opts.initCap)
		}
	}
	return p, nil
}

// Push enqueues one input value onto the current lane and advances the lane
// cursor. Never blocks.
//
// Returns ErrWouldBlock when the lane queue is full (bounded parsers only);
// the cursor does not advance on failure, so a retry lands on the same lane
// and ordering is preserved.
//
// Single pushing goroutine only.
func (p *Parser[I, O]) Push(elem *I) error {
	if err := p.in[p.submit.val].Enqueue(elem); err != nil {
		return err
	}
	p.submit.val = (p.submit.val + 1) & p.mask
	return nil
}

// Pop dequeues one output value from the current lane and advances the lane
// cursor. Never blocks.
//
// Returns (zero-value, ErrWouldBlock) when the lane queue is empty; the
// cursor does not advance on failure.
//
// Under the single-pusher/single-popper discipline, the k-th successful Pop
// returns f(v) for the k-th successfully pushed v.
//
// Single popping goroutine only.
func (p *Parser[I, O]) Pop() (O, error) {
	elem, err := p.out[p.receive.val].Dequeue()
	if err != nil {
		return elem, err
	}
	p.receive.val = (p.receive.val + 1) & p.mask
	return elem, nil
}

// InputSize returns the best-effort number of pushed elements not yet picked
// up by a worker. Observational only; not synchronized with pushes or pops.
func (p *Parser[I, O]) InputSize() int {
	total := 0
	for _, q := range p.in {
		total += q.SizeApprox()
	}
	return total
}

// OutputSize returns the best-effort number of converted elements not yet
// popped. Observational only.
func (p *Parser[I, O]) OutputSize() int {
	total := 0
	for _, q := range p.out {
		total += q.SizeApprox()
	}
	return total
}

// Lanes returns the number of lanes.
func (p *Parser[I, O]) Lanes() int {
	return p.lanes
}

// Start spawns one spinning worker per lane. Spinning workers busy-wait on
// an empty input queue and exit when Stop clears the active flag.
//
// Returns ErrStarted if workers are already running.
func (p *Parser[I, O]) Start() error {
	return p.start(modeSpin, 0)
}

// StartDrain spawns one draining worker per lane. A draining worker exits
// the first time it observes its input queue empty, which suits throughput
// measurement: push the workload first, then start, then join with
// StopDrain.
//
// Returns ErrStarted if workers are already running.
func (p *Parser[I, O]) StartDrain() error {
	return p.start(modeDrain, 0)
}

// StartSleep spawns one sleep-polling worker per lane. A sleeping worker
// sleeps for interval whenever its input queue is empty and exits when Stop
// clears the active flag.
//
// Returns ErrStarted if workers are already running.
func (p *Parser[I, O]) StartSleep(interval time.Duration) error {
	return p.start(modeSleep, interval)
}

func (p *Parser[I, O]) start(mode workerMode, interval time.Duration) error {
	if p.running {
		return ErrStarted
	}
	if mode != modeDrain {
		p.active.StoreRelease(true)
	}
	p.running = true
	for i := range p.lanes {
		p.wg.Add(1)
		go func(lane int) {
			defer p.wg.Done()
			p.work(lane, mode, interval)
		}(i)
	}
	return nil
}

// Stop clears the active flag and joins all workers. After Stop returns, no
// worker is running. Stop without a prior Start, or after a completed Stop,
// is a no-op.
func (p *Parser[I, O]) Stop() {
	if !p.running {
		return
	}
	p.active.StoreRelease(false)
	p.wg.Wait()
	p.running = false
}

// StopDrain joins draining workers. The active flag is already false in
// drain mode, so this is simply a join.
func (p *Parser[I, O]) StopDrain() {
	p.Stop()
}

// StopSleep stops sleep-polling workers. Equivalent to Stop; the final
// sleep interval elapses before the join completes.
func (p *Parser[I, O]) StopSleep() {
	p.Stop()
}
