// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ilf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/parq/ilf"
)

func TestRecordString(t *testing.T) {
	r := ilf.Record{
		Type:     "FlowStart",
		Sender:   "10.0.0.1",
		Receiver: "10.0.0.2",
		Time:     "1700000000",
		Pairs: []ilf.KeyValue{
			{Key: "bytes", Value: "512.000000", Quoted: true},
			{Key: "inbound", Value: "true", Quoted: false},
		},
	}
	assert.Equal(t,
		`FlowStart[10.0.0.1,10.0.0.2,1700000000,(bytes="512.000000";inbound=true)]`,
		r.String())
}

func TestRecordStringEmptyPairs(t *testing.T) {
	r := ilf.Record{Type: "LogOn", Sender: "a", Receiver: "b", Time: "0"}
	assert.Equal(t, "LogOn[a,b,0,()]", r.String())
}

func TestKeyValueString(t *testing.T) {
	quoted := ilf.KeyValue{Key: "proc", Value: "sshd", Quoted: true}
	bare := ilf.KeyValue{Key: "pid", Value: "42", Quoted: false}
	assert.Equal(t, `proc="sshd"`, quoted.String())
	assert.Equal(t, "pid=42", bare.String())
}

func TestKeyValueEqualIgnoresQuoting(t *testing.T) {
	a := ilf.KeyValue{Key: "k", Value: "v", Quoted: true}
	b := ilf.KeyValue{Key: "k", Value: "v", Quoted: false}
	c := ilf.KeyValue{Key: "k", Value: "w", Quoted: true}

	assert.True(t, a.Equal(&b))
	assert.False(t, a.Equal(&c))
}

func TestRecordEqual(t *testing.T) {
	base := ilf.Record{
		Type: "FileCreate", Sender: "s", Receiver: "r", Time: "1",
		Pairs: []ilf.KeyValue{
			{Key: "a", Value: "1", Quoted: true},
			{Key: "b", Value: "2", Quoted: true},
		},
	}

	same := base
	same.Pairs = []ilf.KeyValue{
		{Key: "a", Value: "1", Quoted: false}, // quoting ignored
		{Key: "b", Value: "2", Quoted: true},
	}
	assert.True(t, base.Equal(&same))

	reordered := base
	reordered.Pairs = []ilf.KeyValue{base.Pairs[1], base.Pairs[0]}
	assert.False(t, base.Equal(&reordered), "attribute order is significant")

	shorter := base
	shorter.Pairs = base.Pairs[:1]
	assert.False(t, base.Equal(&shorter))

	header := base
	header.Sender = "other"
	assert.False(t, base.Equal(&header))
}

func TestAppendTextMatchesString(t *testing.T) {
	r := ilf.Record{
		Type: "ProcessCreate", Sender: "1.2.3.4", Receiver: "5.6.7.8", Time: "99",
		Pairs: []ilf.KeyValue{{Key: "proc", Value: "init", Quoted: true}},
	}
	assert.Equal(t, r.String(), string(r.AppendText(nil)))

	// Appending extends rather than replaces
	out := r.AppendText([]byte("prefix:"))
	assert.Equal(t, "prefix:"+r.String(), string(out))
}

func TestFlowToRecord(t *testing.T) {
	in := ilf.Flow{
		Type:    2,
		Src:     [4]byte{192, 168, 0, 1},
		Dst:     [4]byte{10, 0, 0, 7},
		Time:    1700000000,
		Bytes:   512,
		Inbound: true,
		Proc:    "sshd",
	}

	var out ilf.Record
	ilf.FlowToRecord(&in, &out)

	assert.Equal(t, "FlowStart", out.Type)
	assert.Equal(t, "192.168.0.1", out.Sender)
	assert.Equal(t, "10.0.0.7", out.Receiver)
	assert.Equal(t, "1700000000", out.Time)
	require.Len(t, out.Pairs, 3)
	assert.Equal(t, ilf.KeyValue{Key: "bytes", Value: "512.000000", Quoted: true}, out.Pairs[0])
	assert.Equal(t, ilf.KeyValue{Key: "inbound", Value: "true", Quoted: true}, out.Pairs[1])
	assert.Equal(t, ilf.KeyValue{Key: "proc", Value: "sshd", Quoted: true}, out.Pairs[2])
}

// TestFlowToRecordReuse converts twice into the same record, which is how a
// caller-owned scratch value behaves. The second conversion must fully
// replace the first.
func TestFlowToRecordReuse(t *testing.T) {
	var out ilf.Record

	first := ilf.Flow{Type: 0, Src: [4]byte{1, 1, 1, 1}, Dst: [4]byte{2, 2, 2, 2}, Proc: "a"}
	ilf.FlowToRecord(&first, &out)

	second := ilf.Flow{Type: 1, Src: [4]byte{3, 3, 3, 3}, Dst: [4]byte{4, 4, 4, 4}, Proc: "b"}
	ilf.FlowToRecord(&second, &out)

	assert.Equal(t, "FileCreate", out.Type)
	assert.Equal(t, "3.3.3.3", out.Sender)
	require.Len(t, out.Pairs, 3)
	assert.Equal(t, "b", out.Pairs[2].Value)
}

// TestFlowToRecordTypeWrap checks that out-of-table event types fold back
// into the table instead of panicking.
func TestFlowToRecordTypeWrap(t *testing.T) {
	in := ilf.Flow{Type: 6}
	var out ilf.Record
	ilf.FlowToRecord(&in, &out)
	assert.Equal(t, "FlowStart", out.Type)
}
