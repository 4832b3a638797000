// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples that run lane workers concurrently with the
// calling goroutine. The hand-off uses atomix acquire-release orderings
// that Go's race detector cannot observe, so the examples are excluded
// from race testing. They are correct.

package parq_test

import (
	"fmt"
	"strconv"

	"code.hybscloud.com/parq"
)

// ExampleParser demonstrates the drain-mode workflow: stage the inputs,
// run the workers to completion, pop the results in push order.
func ExampleParser() {
	itoa := func(n *int, s *string) { *s = strconv.Itoa(*n) }

	p, err := parq.NewParser(itoa, 2, 16)
	if err != nil {
		panic(err)
	}

	for i := range 5 {
		p.Push(&i)
	}

	p.StartDrain() // workers exit once their input lanes are empty
	p.StopDrain()  // join

	for range 5 {
		s, _ := p.Pop()
		fmt.Println(s)
	}

	// Output:
	// 0
	// 1
	// 2
	// 3
	// 4
}

// ExampleBuildParser demonstrates builder configuration.
func ExampleBuildParser() {
	double := func(in *int, out *int) { *out = *in * 2 }

	p, err := parq.BuildParser(parq.New(4).InitCapacity(64), double)
	if err != nil {
		panic(err)
	}

	for i := range 4 {
		p.Push(&i)
	}
	p.StartDrain()
	p.StopDrain()

	for range 4 {
		v, _ := p.Pop()
		fmt.Println(v)
	}

	// Output:
	// 0
	// 2
	// 4
	// 6
}
