// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parq

// ConvertFunc transforms one input value into one output value, writing the
// output in place through the out pointer.
//
// The parser invokes the function from every lane worker concurrently, always
// with distinct arguments. The function must therefore be pure with respect
// to its inputs: no shared mutable state, no assumptions about the order in
// which lanes run. Any error handling must be encoded in the output type
// itself; a ConvertFunc has no error return.
//
// The out value is a fresh zero value on every invocation and is copied into
// the lane's output queue after the call returns, so the function may freely
// build reference-typed fields (slices, maps) without aliasing earlier
// outputs.
type ConvertFunc[I, O any] func(in *I, out *O)

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs. The queue
// stores a copy of the pointed-to value, so the original can be modified
// after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if a bounded queue is full.
	//
	// Single producer goroutine only.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value (copied from the queue's internal
// buffer). The original slot is cleared to allow garbage collection of
// referenced objects.
type Consumer[T any] interface {
	// Dequeue removes and returns an element from the queue (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	//
	// Single consumer goroutine only.
	Dequeue() (T, error)
}
