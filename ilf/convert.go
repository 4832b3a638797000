// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ilf

import (
	"net/netip"
	"strconv"
)

// Flow is a sample structured input: a network flow observation as produced
// by a telemetry collector.
type Flow struct {
	Type    uint8
	Src     [4]byte
	Dst     [4]byte
	Time    int64
	Bytes   float64
	Inbound bool
	Proc    string
}

// eventTypes maps Flow.Type to the record's event type tag.
var eventTypes = [...]string{
	"ProcessCreate",
	"FileCreate",
	"FlowStart",
	"LogOn",
}

// FlowToRecord converts one Flow into its event record, writing the record
// in place. It is pure and safe to invoke from concurrent pipeline lanes
// with distinct arguments, which makes it a valid parq conversion function:
//
//	p, err := parq.NewParser(ilf.FlowToRecord, lanes, 4096)
func FlowToRecord(in *Flow, out *Record) {
	out.Type = eventTypes[int(in.Type)%len(eventTypes)]
	out.Sender = netip.AddrFrom4(in.Src).String()
	out.Receiver = netip.AddrFrom4(in.Dst).String()
	out.Time = strconv.FormatInt(in.Time, 10)
	out.Pairs = append(out.Pairs[:0],
		KeyValue{Key: "bytes", Value: strconv.FormatFloat(in.Bytes, 'f', 6, 64), Quoted: true},
		KeyValue{Key: "inbound", Value: strconv.FormatBool(in.Inbound), Quoted: true},
		KeyValue{Key: "proc", Value: in.Proc, Quoted: true},
	)
}
