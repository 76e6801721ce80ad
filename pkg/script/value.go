// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package script

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the shape of a Value.
type Kind int

const (
	// KindSequence is an ordered list of values. The zero Value is an empty sequence.
	KindSequence Kind = iota
	// KindMapping is a string-keyed table with insertion-ordered keys.
	KindMapping
	// KindString is a scalar string.
	KindString
	// KindInt is a scalar integer.
	KindInt
	// KindReal is a scalar decimal number.
	KindReal
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a parsed script value: a scalar, a sequence, or a mapping.
// Values returned by this package are independent copies; mutating one never
// affects a binding or another consumer.
type Value struct {
	kind   Kind
	str    string
	num    int64
	real   float64
	seq    []Value
	fields map[string]Value
	keys   []string
}

// String returns a scalar string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns a scalar integer value.
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Real returns a scalar decimal value.
func Real(f float64) Value { return Value{kind: KindReal, real: f} }

// Sequence returns a sequence holding copies of vs.
func Sequence(vs ...Value) Value {
	out := Value{kind: KindSequence, seq: make([]Value, 0, len(vs))}
	for _, v := range vs {
		out.seq = append(out.seq, v.Clone())
	}
	return out
}

// Strings returns a sequence of string scalars.
func Strings(ss ...string) Value {
	out := Value{kind: KindSequence, seq: make([]Value, 0, len(ss))}
	for _, s := range ss {
		out.seq = append(out.seq, String(s))
	}
	return out
}

// Mapping returns an empty mapping.
func Mapping() Value {
	return Value{kind: KindMapping, fields: map[string]Value{}}
}

// Kind returns the shape of v.
func (v Value) Kind() Kind { return v.kind }

// IsScalar reports whether v is a string or number.
func (v Value) IsScalar() bool {
	return v.kind == KindString || v.kind == KindInt || v.kind == KindReal
}

// Str returns the string payload of a string scalar.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Int returns the integer payload of an integer scalar.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.num, true
}

// Float returns the numeric payload of an integer or real scalar as float64.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.num), true
	case KindReal:
		return v.real, true
	default:
		return 0, false
	}
}

// Len returns the element count of a sequence or the key count of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return len(v.keys)
	default:
		return 0
	}
}

// Items returns copies of the elements of a sequence, or nil for other kinds.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	out := make([]Value, len(v.seq))
	for i, e := range v.seq {
		out[i] = e.Clone()
	}
	return out
}

// Keys returns the keys of a mapping in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	return slices.Clone(v.keys)
}

// Get returns a copy of the value stored under key in a mapping.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	e, ok := v.fields[key]
	if !ok {
		return Value{}, false
	}
	return e.Clone(), true
}

// Path walks nested mappings by key.
func (v Value) Path(keys ...string) (Value, bool) {
	cur := v
	for _, k := range keys {
		next, ok := cur.Get(k)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Set stores a copy of val under key. An empty sequence is promoted to a
// mapping first; Set on any other non-mapping returns an error.
func (v *Value) Set(key string, val Value) error {
	if v.kind == KindSequence && len(v.seq) == 0 {
		*v = Mapping()
	}
	if v.kind != KindMapping {
		return fmt.Errorf("cannot set field %q on a %s", key, v.kind)
	}
	if v.fields == nil {
		v.fields = map[string]Value{}
	}
	if _, exists := v.fields[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = val.Clone()
	return nil
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	out := v
	if v.seq != nil {
		out.seq = make([]Value, len(v.seq))
		for i, e := range v.seq {
			out.seq[i] = e.Clone()
		}
	}
	if v.fields != nil {
		out.fields = make(map[string]Value, len(v.fields))
		for k, e := range v.fields {
			out.fields[k] = e.Clone()
		}
		out.keys = slices.Clone(v.keys)
	}
	return out
}

// Text renders a scalar as text. Sequences and mappings render as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindReal:
		return strconv.FormatFloat(v.real, 'f', -1, 64)
	default:
		return ""
	}
}

// StringSlice flattens a value into the text of its scalars. Nested sequences
// are flattened, mappings contribute nothing, and a lone scalar becomes a
// one-element slice.
func (v Value) StringSlice() []string {
	var out []string
	var walk func(Value)
	walk = func(e Value) {
		switch {
		case e.IsScalar():
			out = append(out, e.Text())
		case e.kind == KindSequence:
			for _, c := range e.seq {
				walk(c)
			}
		}
	}
	walk(v)
	return out
}

// Interface converts v into plain Go values: string, int64, float64, []any,
// or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindReal:
		return v.real
	case KindMapping:
		m := make(map[string]any, len(v.fields))
		for k, e := range v.fields {
			m[k] = e.Interface()
		}
		return m
	default:
		s := make([]any, 0, len(v.seq))
		for _, e := range v.seq {
			s = append(s, e.Interface())
		}
		return s
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// String renders v in a compact debug form.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, e := range v.seq {
			parts[i] = e.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindMapping:
		parts := make([]string, len(v.keys))
		for i, k := range v.keys {
			parts[i] = fmt.Sprintf("[%q] = %s", k, v.fields[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return v.Text()
	}
}
