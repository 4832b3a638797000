// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// maxSegmentSize caps the geometric growth of segment allocations.
const maxSegmentSize = 1 << 20

// ring is one segment of an SPSC queue: a Lamport ring buffer with cached
// index optimization. The producer caches the consumer's dequeue index, and
// vice versa, reducing cross-core cache line traffic.
//
// Cursors are absolute counters local to the segment; the mask folds them
// into buffer positions.
type ring[T any] struct {
	_          pad
	head       atomix.Uint64 // Consumer reads from here
	_          pad
	cachedTail uint64 // Consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // Producer writes here
	_          pad
	cachedHead uint64 // Producer's cached view of head
	_          pad
	next       atomic.Pointer[ring[T]] // Successor segment, set once by the producer
	buffer     []T
	mask       uint64
}

func newRing[T any](n uint64) *ring[T] {
	return &ring[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

// SPSC is a single-producer single-consumer FIFO queue built from a list of
// ring segments.
//
// Each segment is a fixed Lamport ring. When the current segment fills, the
// producer allocates the next one (doubling in size up to maxSegmentSize)
// and links it, so the queue grows without disturbing in-flight cursors.
// The consumer drains a segment completely before following the link, which
// preserves FIFO order across segments. Bounded queues skip the growth step
// and report ErrWouldBlock instead.
//
// Exactly one goroutine may produce and exactly one may consume for the
// queue's entire lifetime. The roles are fixed when the queue enters
// service; swapping them is undefined behavior.
//
// Memory: O(total capacity) with per-segment cursor overhead
type SPSC[T any] struct {
	_        pad
	front    atomic.Pointer[ring[T]] // Consumer's current segment
	_        pad
	back     *ring[T] // Producer's current segment
	nextSize uint64   // Allocation size for the next segment
	bounded  bool
	_        pad
}

// NewSPSC creates a growable SPSC queue with the given initial capacity.
// Capacity rounds up to the next power of 2.
func NewSPSC[T any](capacity int) *SPSC[T] {
	if capacity < 2 {
		panic("parq: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	r := newRing[T](n)
	q := &SPSC[T]{back: r, nextSize: nextSegmentSize(n)}
	q.front.Store(r)
	return q
}

// NewSPSCBounded creates an SPSC queue frozen at the given capacity.
// Capacity rounds up to the next power of 2. Enqueue on a full bounded
// queue returns ErrWouldBlock.
func NewSPSCBounded[T any](capacity int) *SPSC[T] {
	q := NewSPSC[T](capacity)
	q.bounded = true
	return q
}

func nextSegmentSize(n uint64) uint64 {
	if n >= maxSegmentSize {
		return maxSegmentSize
	}
	return n * 2
}

// Enqueue adds an element to the queue (producer only).
//
// On a growable queue Enqueue fails only if the runtime cannot allocate a
// new segment, which surfaces as an allocation panic as with any Go slice.
// On a bounded queue Enqueue returns ErrWouldBlock when full.
func (q *SPSC[T]) Enqueue(elem *T) error {
	r := q.back
	tail := r.tail.LoadRelaxed()
	if tail-r.cachedHead > r.mask {
		r.cachedHead = r.head.LoadAcquire()
		if tail-r.cachedHead > r.mask {
			if q.bounded {
				return ErrWouldBlock
			}
			r = q.grow()
			tail = 0
		}
	}

	r.buffer[tail&r.mask] = *elem
	r.tail.StoreRelease(tail + 1)
	return nil
}

// TryEnqueue adds an element only if the current segment has room. It never
// allocates; a full segment returns ErrWouldBlock even on a growable queue.
func (q *SPSC[T]) TryEnqueue(elem *T) error {
	r := q.back
	tail := r.tail.LoadRelaxed()
	if tail-r.cachedHead > r.mask {
		r.cachedHead = r.head.LoadAcquire()
		if tail-r.cachedHead > r.mask {
			return ErrWouldBlock
		}
	}

	r.buffer[tail&r.mask] = *elem
	r.tail.StoreRelease(tail + 1)
	return nil
}

// grow allocates the successor segment and moves the producer onto it.
// The link is published after every element of the full segment, so the
// consumer observes the successor only once the predecessor is final.
func (q *SPSC[T]) grow() *ring[T] {
	r := newRing[T](q.nextSize)
	q.nextSize = nextSegmentSize(q.nextSize)
	q.back.next.Store(r)
	q.back = r
	return r
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSC[T]) Dequeue() (T, error) {
	r := q.front.Load()
	for {
		head := r.head.LoadRelaxed()
		if head >= r.cachedTail {
			r.cachedTail = r.tail.LoadAcquire()
			if head >= r.cachedTail {
				next := r.next.Load()
				if next == nil {
					var zero T
					return zero, ErrWouldBlock
				}
				// The producer links a successor only after its final
				// publish into this segment; one more acquire of tail
				// decides between leftover elements and advancing.
				r.cachedTail = r.tail.LoadAcquire()
				if head >= r.cachedTail {
					q.front.Store(next)
					r = next
					continue
				}
			}
		}

		elem := r.buffer[head&r.mask]
		var zero T
		r.buffer[head&r.mask] = zero
		r.head.StoreRelease(head + 1)
		return elem, nil
	}
}

// SizeApprox returns a best-effort element count.
//
// The value may be stale under concurrent operations but is never negative
// and never exceeds Cap. Cost is linear in the number of live segments;
// avoid calling it in a hot loop.
func (q *SPSC[T]) SizeApprox() int {
	total := 0
	for r := q.front.Load(); r != nil; r = r.next.Load() {
		head := r.head.LoadAcquire()
		tail := r.tail.LoadAcquire()
		if tail > head {
			n := tail - head
			if n > r.mask+1 {
				n = r.mask + 1
			}
			total += int(n)
		}
	}
	return total
}

// Cap returns the total capacity across live segments. Like SizeApprox it
// is best effort under concurrent growth.
func (q *SPSC[T]) Cap() int {
	total := 0
	for r := q.front.Load(); r != nil; r = r.next.Load() {
		total += int(r.mask + 1)
	}
	return total
}
