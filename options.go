// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parq

import (
	"runtime"

	"go.uber.org/zap"
)

// Options configures parser construction.
type Options struct {
	// Lane count (must be a power of two)
	lanes int

	// Initial per-lane queue capacity (rounds up to next power of 2)
	initCap int

	// Bounded freezes each queue at its initial capacity
	bounded bool

	// Logger for worker diagnostics
	logger *zap.Logger
}

// Builder creates parsers with fluent configuration.
//
// The builder carries everything except the conversion function, which is
// supplied at build time so the element types can be inferred:
//
//	p, err := parq.BuildParser(parq.New(8).InitCapacity(1024), itoa)
//	p, err := parq.BuildParser(parq.Default().Bounded(), convert)
type Builder struct {
	opts Options
}

// New creates a parser builder with the given lane count.
//
// The lane count must be a power of two; this is validated at build time
// rather than here so that misuse surfaces as an error, not a panic.
// Initial per-lane capacity defaults to DefaultInitCapacity.
func New(lanes int) *Builder {
	return &Builder{opts: Options{lanes: lanes, initCap: DefaultInitCapacity}}
}

// Default creates a parser builder with one lane per available CPU, rounded
// up to the next power of two, and the default initial capacity.
func Default() *Builder {
	return New(roundToPow2(runtime.NumCPU()))
}

// DefaultInitCapacity is the initial per-lane queue capacity used when the
// builder does not override it.
const DefaultInitCapacity = 4096

// InitCapacity sets the initial capacity of every lane queue.
// Rounds up to the next power of 2. Values below 2 use DefaultInitCapacity.
func (b *Builder) InitCapacity(n int) *Builder {
	if n < 2 {
		n = DefaultInitCapacity
	}
	b.opts.initCap = n
	return b
}

// Bounded freezes every lane queue at its initial capacity. Pushes to a full
// lane then return ErrWouldBlock instead of growing the backing memory.
//
// Use for fixed-footprint deployments where backpressure at the push site is
// preferable to allocation.
func (b *Builder) Bounded() *Builder {
	b.opts.bounded = true
	return b
}

// Logger sets the logger used for worker diagnostics. Defaults to a no-op
// logger; the library never writes to stderr on its own.
func (b *Builder) Logger(l *zap.Logger) *Builder {
	b.opts.logger = l
	return b
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// isPow2 reports whether n is a power of two. Zero is not.
func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill cache line after 8-byte field.
type padShort [64 - 8]byte
