// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parq

// LaneStats is a best-effort snapshot of one lane's queue depths.
type LaneStats struct {
	Lane        int
	InputDepth  int
	OutputDepth int
}

// Stats is a best-effort snapshot of the whole bank. Depths are collected
// without synchronization, so concurrent pushes, pops, and conversions can
// make the totals slightly inconsistent with each other.
type Stats struct {
	Lanes       []LaneStats
	InputTotal  int
	OutputTotal int
	Running     bool
}

// Stats returns a snapshot of per-lane queue depths.
func (p *Parser[I, O]) Stats() Stats {
	s := Stats{
		Lanes:   make([]LaneStats, p.lanes),
		Running: p.running,
	}
	for i := range p.lanes {
		in := p.in[i].SizeApprox()
		out := p.out[i].SizeApprox()
		s.Lanes[i] = LaneStats{Lane: i, InputDepth: in, OutputDepth: out}
		s.InputTotal += in
		s.OutputTotal += out
	}
	return s
}
