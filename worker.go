// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parq

import (
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
	"go.uber.org/zap"
)

// workerMode selects a worker's idle policy. A worker is created in one mode
// and never changes mode; the mode only decides what happens when the input
// queue is observed empty.
type workerMode uint8

const (
	// modeSpin busy-waits until the active flag clears.
	modeSpin workerMode = iota
	// modeDrain exits on the first empty observation.
	modeDrain
	// modeSleep sleeps for a fixed interval until the active flag clears.
	modeSleep
)

// work is the lane worker body. The worker is the sole consumer of in[lane]
// and the sole producer of out[lane]; together with the façade's cursor
// ownership this keeps every queue cursor single-writer.
func (p *Parser[I, O]) work(lane int, mode workerMode, interval time.Duration) {
	in, out := p.in[lane], p.out[lane]
	sw := spin.Wait{}

	for {
		if mode != modeDrain && !p.active.LoadAcquire() {
			return
		}
		input, err := in.Dequeue()
		if err != nil {
			switch mode {
			case modeDrain:
				return
			case modeSpin:
				sw.Once()
			case modeSleep:
				time.Sleep(interval)
			}
			continue
		}
		sw.Reset()

		// A fresh output value every iteration: the previous one was
		// copied into the queue and may hold reference-typed fields the
		// consumer has yet to read.
		var output O
		p.conv(&input, &output)
		if err := out.Enqueue(&output); err != nil {
			p.retryEnqueue(lane, out, &output)
		}
	}
}

// retryEnqueue keeps an output value alive until its lane queue accepts it.
//
// Dropping the value here would silently break the global FIFO guarantee, so
// the worker retries with backoff instead. The output lane is paired with
// the input lane the value came from, which bounds head-of-line blocking:
// the popper draining its round-robin rotation always frees this lane.
// A caller that stops popping a full bounded parser leaves the worker
// parked here, and Stop will not return until the lane drains.
func (p *Parser[I, O]) retryEnqueue(lane int, out *SPSC[O], elem *O) {
	p.log.Warn("lane output queue full, retrying",
		zap.Int("lane", lane),
		zap.Int("depth", out.SizeApprox()),
	)
	backoff := iox.Backoff{}
	for {
		backoff.Wait()
		if out.Enqueue(elem) == nil {
			return
		}
	}
}
