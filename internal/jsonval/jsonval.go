/*
Copyright 2025 The JQL Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package jsonval is the JSON value abstraction the walker operates on.
//
// It provides a pluggable decode/encode layer in the same spirit as
// github.com/antflydb/antfly-go/libaf/json: it defaults to encoding/json
// but can be swapped for a faster implementation such as
// github.com/bytedance/sonic via SetCodec. Unlike a bare map[string]any,
// objects here preserve their source insertion order, which the walker's
// key-order-preservation guarantees depend on.
package jsonval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

// Kind classifies a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Pair is a single (key, value) object entry, in source order.
type Pair struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. Arrays and objects are read-mostly:
// Elements and Pairs return the backing slices, which callers must not
// mutate.
type Value struct {
	kind  Kind
	b     bool
	num   json.Number
	str   string
	arr   []Value
	pairs []Pair
	index map[string]int
}

// Besides the decode entry points, the constructors below build Values
// programmatically (tests, lens comparisons, and truncation all need to
// construct fresh Values).

// NewNull returns the JSON null value.
func NewNull() Value { return Value{kind: Null} }

// NewBool returns a JSON boolean value.
func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

// NewNumber returns a JSON number value from its canonical text form.
func NewNumber(n json.Number) Value { return Value{kind: Number, num: n} }

// NewUint returns a JSON number value from an unsigned integer.
func NewUint(n uint64) Value { return Value{kind: Number, num: json.Number(strconv.FormatUint(n, 10))} }

// NewString returns a JSON string value.
func NewString(s string) Value { return Value{kind: String, str: s} }

// NewArray returns a JSON array value with the given elements, in order.
func NewArray(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: Array, arr: elems}
}

// NewObject returns a JSON object value from ordered pairs. Keys must be
// unique; behavior is undefined otherwise.
func NewObject(pairs []Pair) Value {
	idx := make(map[string]int, len(pairs))
	for i, p := range pairs {
		idx[p.Key] = i
	}
	return Value{kind: Object, pairs: pairs, index: idx}
}

// EmptyObject returns an object with no entries.
func EmptyObject() Value { return NewObject(nil) }

// EmptyArray returns an array with no elements.
func EmptyArray() Value { return NewArray(nil) }

// Kind reports the Value's JSON type.
func (v Value) Kind() Kind { return v.kind }

// IsArray reports whether the Value is a JSON array.
func (v Value) IsArray() bool { return v.kind == Array }

// IsObject reports whether the Value is a JSON object.
func (v Value) IsObject() bool { return v.kind == Object }

// Bool returns the boolean payload; only meaningful when Kind() == Bool.
func (v Value) Bool() bool { return v.b }

// NumberText returns a number's text as decoded or constructed (e.g. "42"),
// for the lens-matching comparison described in the filter engine spec.
func (v Value) NumberText() string { return string(v.num) }

// Str returns the string payload; only meaningful when Kind() == String.
func (v Value) Str() string { return v.str }

// Len returns the number of elements (array) or entries (object), and 0
// for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.pairs)
	default:
		return 0
	}
}

// At returns the array element at i. Callers must bounds-check first.
func (v Value) At(i int) Value { return v.arr[i] }

// Elements returns the array's elements, in order. Do not mutate.
func (v Value) Elements() []Value { return v.arr }

// Get returns the object value for key and whether it was present.
func (v Value) Get(key string) (Value, bool) {
	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}
	return v.pairs[i].Value, true
}

// Pairs returns the object's (key, value) entries in source order. Do not
// mutate.
func (v Value) Pairs() []Pair { return v.pairs }

// PairAt returns the i-th object entry by current key order.
func (v Value) PairAt(i int) Pair { return v.pairs[i] }

// Keys returns the object's keys in order, as a []string.
func (v Value) Keys() []string {
	keys := make([]string, len(v.pairs))
	for i, p := range v.pairs {
		keys[i] = p.Key
	}
	return keys
}

// HasKey reports whether the object contains key.
func (v Value) HasKey(key string) bool {
	_, ok := v.index[key]
	return ok
}

// Equal reports deep structural equality, used by tests and by == for
// primitives elsewhere is avoided since Value holds slices/maps.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case Number:
		return a.num == b.num
	case String:
		return a.str == b.str
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for i := range a.pairs {
			if a.pairs[i].Key != b.pairs[i].Key || !Equal(a.pairs[i].Value, b.pairs[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Codec holds the pluggable JSON decode/encode functions, mirroring
// libaf/json.Config: swap Unmarshal/Marshal for a faster implementation
// without touching the walker.
type Codec struct {
	Unmarshal func(data []byte) (Value, error)
	Marshal   func(v Value) ([]byte, error)
}

func stdUnmarshal(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

func stdMarshal(v Value) ([]byte, error) {
	return json.Marshal(encodeAny(v))
}

func sonicUnmarshal(data []byte) (Value, error) {
	var raw any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return Value{}, err
	}
	// sonic does not preserve object key order either: its parse above
	// only rejects invalid input, and its result is discarded. The Value
	// itself is built by the order-preserving token decoder.
	return stdUnmarshal(data)
}

func sonicMarshal(v Value) ([]byte, error) {
	return sonic.Marshal(encodeAny(v))
}

// DefaultCodec returns the encoding/json-backed codec.
func DefaultCodec() Codec {
	return Codec{Unmarshal: stdUnmarshal, Marshal: stdMarshal}
}

// SonicCodec returns a codec that builds Values with the order-preserving
// decoder (required by the spec), after a sonic parse that only checks the
// input, and encodes with bytedance/sonic for throughput.
func SonicCodec() Codec {
	return Codec{Unmarshal: sonicUnmarshal, Marshal: sonicMarshal}
}

var activeCodec = DefaultCodec()

// SetCodec installs the active global codec. Call before Decode/Encode.
func SetCodec(c Codec) { activeCodec = c }

// GetCodec returns the active global codec.
func GetCodec() Codec { return activeCodec }

// Decode parses data into a Value using the active codec.
func Decode(data []byte) (Value, error) { return activeCodec.Unmarshal(data) }

// Encode serializes v into JSON bytes using the active codec.
func Encode(v Value) ([]byte, error) { return activeCodec.Marshal(v) }

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("jsonval: unexpected delimiter %q", t)
		}
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(t), nil
	case json.Number:
		return NewNumber(t), nil
	case string:
		return NewString(t), nil
	default:
		return Value{}, fmt.Errorf("jsonval: unsupported token %T", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	var pairs []Pair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("jsonval: expected object key, got %T", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		pairs = append(pairs, Pair{Key: key, Value: val})
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return NewObject(pairs), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var elems []Value
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, val)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return NewArray(elems), nil
}

// encodeAny converts a Value back into a plain any tree suitable for
// encoding/json or sonic to marshal, preserving object key order by
// emitting json.RawMessage built incrementally would be overkill here:
// we instead marshal objects by hand to keep insertion order in the
// output bytes.
func encodeAny(v Value) any {
	switch v.kind {
	case Null:
		return nil
	case Bool:
		return v.b
	case Number:
		return v.num
	case String:
		return v.str
	case Array:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = encodeAny(e)
		}
		return out
	case Object:
		return orderedObject{pairs: v.pairs}
	default:
		return nil
	}
}

// orderedObject implements json.Marshaler to emit object keys in their
// source/selected order, since Go maps (and therefore encoding/json's
// default map handling) do not preserve insertion order.
type orderedObject struct {
	pairs []Pair
}

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range o.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := json.Marshal(encodeAny(p.Value))
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
