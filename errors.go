// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Push/Enqueue: the queue is full (bounded queues only)
// For Pop/Dequeue: the queue is empty (no data available)
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later (with backoff or yield) rather than propagating
// the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    out, err := p.Pop()
//	    if err == nil {
//	        backoff.Reset()
//	        consume(out)
//	        continue
//	    }
//	    if parq.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// ErrLaneCount is returned by parser construction when the requested lane
// count is zero or not a power of two. Lane selection uses bitwise masking,
// which requires a power-of-two lane count.
var ErrLaneCount = errors.New("parq: lane count must be a power of two")

// ErrStarted is returned by a Start variant when workers are already
// running. A parser must be stopped (all workers joined) before it can be
// started again.
var ErrStarted = errors.New("parq: workers already running")

// ErrNilConvert is returned by parser construction when the conversion
// function is nil.
var ErrNilConvert = errors.New("parq: conversion function is nil")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil or ErrWouldBlock.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
