// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// parqbench measures parq pipeline throughput on the flow-to-record
// workload: it stages a batch of pseudo-random flow observations, runs the
// parser in the selected worker mode, and verifies that every popped record
// matches its input in push order.
package main

import (
	"flag"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"code.hybscloud.com/parq"
	"code.hybscloud.com/parq/ilf"
)

func main() {
	count := flag.Int("n", 1_000_000, "number of records to process")
	lanes := flag.Int("lanes", 0, "lane count (power of two; 0 = one per CPU)")
	capacity := flag.Int("cap", parq.DefaultInitCapacity, "initial per-lane queue capacity")
	mode := flag.String("mode", "drain", "worker mode: drain, spin, or sleep")
	interval := flag.Duration("interval", time.Millisecond, "sleep-mode polling interval")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	b := parq.Default()
	if *lanes > 0 {
		b = parq.New(*lanes)
	}
	p, err := parq.BuildParser(b.InitCapacity(*capacity).Logger(logger), ilf.FlowToRecord)
	if err != nil {
		logger.Fatal("parser construction failed", zap.Error(err))
	}

	logger.Info("generating workload",
		zap.Int("records", *count),
		zap.Int("lanes", p.Lanes()),
		zap.String("mode", *mode),
	)
	flows := make([]ilf.Flow, *count)
	now := time.Now().Unix()
	for i := range flows {
		flows[i] = ilf.Flow{
			Type:    uint8(rand.UintN(4)),
			Src:     [4]byte{byte(rand.Uint32()), byte(rand.Uint32()), byte(rand.Uint32()), byte(rand.Uint32())},
			Dst:     [4]byte{byte(rand.Uint32()), byte(rand.Uint32()), byte(rand.Uint32()), byte(rand.Uint32())},
			Time:    now,
			Bytes:   rand.Float64() * 1024,
			Inbound: i%2 == 0,
			Proc:    "proc-" + strconv.FormatUint(rand.Uint64N(1<<32), 10),
		}
	}

	for i := range flows {
		if err := p.Push(&flows[i]); err != nil {
			logger.Fatal("push failed", zap.Int("index", i), zap.Error(err))
		}
	}

	start := time.Now()
	popped := 0
	switch *mode {
	case "drain":
		if err := p.StartDrain(); err != nil {
			logger.Fatal("start failed", zap.Error(err))
		}
		p.StopDrain()
		popped = verify(logger, p, flows, *count)
	case "spin":
		if err := p.Start(); err != nil {
			logger.Fatal("start failed", zap.Error(err))
		}
		popped = verify(logger, p, flows, *count)
		p.Stop()
	case "sleep":
		if err := p.StartSleep(*interval); err != nil {
			logger.Fatal("start failed", zap.Error(err))
		}
		popped = verify(logger, p, flows, *count)
		p.StopSleep()
	default:
		logger.Fatal("unknown mode", zap.String("mode", *mode))
	}
	elapsed := time.Since(start)

	if in, out := p.InputSize(), p.OutputSize(); in != 0 || out != 0 {
		logger.Fatal("residual elements after run",
			zap.Int("input", in),
			zap.Int("output", out),
		)
	}
	logger.Info("done",
		zap.Int("records", popped),
		zap.Duration("elapsed", elapsed),
		zap.Float64("records_per_sec", float64(popped)/elapsed.Seconds()),
	)
}

// verify pops count records, comparing each against the conversion of the
// matching input. Pop and worker progress overlap in spin and sleep modes,
// so an empty pop is ordinary and simply retried.
func verify(logger *zap.Logger, p *parq.Parser[ilf.Flow, ilf.Record], flows []ilf.Flow, count int) int {
	var expected ilf.Record
	for k := 0; k < count; {
		got, err := p.Pop()
		if err != nil {
			continue
		}
		ilf.FlowToRecord(&flows[k], &expected)
		if !got.Equal(&expected) {
			logger.Fatal("order violation",
				zap.Int("index", k),
				zap.String("got", got.String()),
				zap.String("want", expected.String()),
			)
		}
		k++
	}
	return count
}
