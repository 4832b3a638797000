// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ilf implements the intermediate log format event record: a tagged
// tuple of event type, sender, receiver, timestamp, and an ordered list of
// key/value attributes, rendered as
//
//	Type[sender,receiver,time,(k1="v1";k2=v2)]
//
// Records are plain value types with no internal synchronization; they are
// the output side of a parq pipeline in the motivating workload, which only
// requires them to be copyable.
package ilf


// KeyValue is one attribute of a record. Quoted controls whether the value
// is rendered inside double quotes.
type KeyValue struct {
	Key    string
	Value  string
	Quoted bool
}

// AppendText appends the rendered attribute to dst and returns the extended
// slice.
func (kv *KeyValue) AppendText(dst []byte) []byte {
	dst = append(dst, kv.Key...)
	if kv.Quoted {
		dst = append(dst, '=', '"')
		dst = append(dst, kv.Value...)
		dst = append(dst, '"')
		return dst
	}
	dst = append(dst, '=')
	dst = append(dst, kv.Value...)
	return dst
}

// String renders the attribute as key="value" or key=value.
func (kv *KeyValue) String() string {
	return string(kv.AppendText(nil))
}

// Equal reports whether two attributes carry the same key and value.
// Quoting is a rendering detail and does not participate in equality.
func (kv *KeyValue) Equal(other *KeyValue) bool {
	return kv.Key == other.Key && kv.Value == other.Value
}

// Record is one event.
type Record struct {
	Type     string
	Sender   string
	Receiver string
	Time     string
	Pairs    []KeyValue
}

// AppendText appends the rendered record to dst and returns the extended
// slice.
func (r *Record) AppendText(dst []byte) []byte {
	dst = append(dst, r.Type...)
	dst = append(dst, '[')
	dst = append(dst, r.Sender...)
	dst = append(dst, ',')
	dst = append(dst, r.Receiver...)
	dst = append(dst, ',')
	dst = append(dst, r.Time...)
	dst = append(dst, ',', '(')
	for i := range r.Pairs {
		if i > 0 {
			dst = append(dst, ';')
		}
		dst = r.Pairs[i].AppendText(dst)
	}
	dst = append(dst, ')', ']')
	return dst
}

// String renders the record in its textual form.
func (r *Record) String() string {
	return string(r.AppendText(make([]byte, 0, 64)))
}

// Equal reports structural equality: header fields and every attribute,
// compared in order.
func (r *Record) Equal(other *Record) bool {
	if r.Type != other.Type ||
		r.Sender != other.Sender ||
		r.Receiver != other.Receiver ||
		r.Time != other.Time {
		return false
	}
	if len(r.Pairs) != len(other.Pairs) {
		return false
	}
	for i := range r.Pairs {
		if !r.Pairs[i].Equal(&other.Pairs[i]) {
			return false
		}
	}
	return true
}
