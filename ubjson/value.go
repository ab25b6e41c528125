// Package ubjson implements the tagged binary value format embedded inside
// Binary-typed settings entries. It is bit-compatible with the UBJSON subset
// emitted and consumed by the Arc engine (UBJsonWriter/UBJsonReader as of
// Mindustry v146).
//
// The codec is intentionally asymmetric: the decoder understands all three
// container encodings of the wire format (standard, counted, and
// type-optimized), but the encoder only ever emits the standard bracketed
// form. External producers emit optimized containers; the deployed writer
// does not, and matching its exact output byte-for-byte is a requirement.
//
// Reference: Arc (Mindustry v146)
//   - arc/util/serialization/UBJsonReader.java
//   - arc/util/serialization/UBJsonWriter.java
package ubjson

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the logical type of a Value.
type Kind uint8

const (
	// KindNull is the null value.
	KindNull Kind = iota
	// KindBool is a boolean.
	KindBool
	// KindInt is an integer. The wire width (Int8/UInt8/Int16/Int32/Int64)
	// is chosen by the encoder; decoded values normalize to int64.
	KindInt
	// KindFloat is a floating-point number. Float32 payloads widen exactly.
	KindFloat
	// KindString is a UTF-8 string. Char payloads decode to a one-character
	// string.
	KindString
	// KindArray is an ordered sequence of values.
	KindArray
	// KindObject is an ordered mapping from unique names to values.
	KindObject
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a node of a decoded tagged-value tree. The kind is fixed at
// construction; the zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  []Member
}

// Member is a single (name, value) pair of an object. Member order is
// preserved so that re-encoding a decoded object is deterministic.
type Member struct {
	Name  string
	Value Value
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns an integer value. The encoder selects the minimal wire width
// that represents v exactly.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float returns a floating-point value. The encoder emits a 4-byte float
// when narrowing to float32 round-trips v exactly, otherwise 8 bytes.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array returns an array value holding elems in order.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// Object returns an object value holding members in order.
// Names must be unique; a duplicate name replaces the earlier member in place.
func Object(members ...Member) Value {
	v := Value{kind: KindObject}
	for _, m := range members {
		v.obj = putMember(v.obj, m)
	}
	return v
}

// putMember appends m, replacing an existing member with the same name.
func putMember(obj []Member, m Member) []Member {
	for i := range obj {
		if obj[i].Name == m.Name {
			obj[i].Value = m.Value
			return obj
		}
	}
	return append(obj, m)
}

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean payload. It is false for any other kind.
func (v Value) AsBool() bool {
	return v.kind == KindBool && v.b
}

// AsInt returns the integer payload, or 0 for any other kind.
func (v Value) AsInt() int64 {
	if v.kind != KindInt {
		return 0
	}
	return v.i
}

// AsFloat returns the floating-point payload. Integer values convert; any
// other kind returns 0.
func (v Value) AsFloat() float64 {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return float64(v.i)
	default:
		return 0
	}
}

// AsString returns the string payload, or "" for any other kind.
func (v Value) AsString() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Items returns the array elements, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Members returns the object members in order, or nil for any other kind.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Get returns the member value with the given name.
func (v Value) Get(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.obj {
		if m.Name == name {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of elements (array) or members (object), and 0 for
// scalar kinds.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Equal reports deep content equality. Floating-point payloads compare by
// bit pattern, so NaN equals NaN and -0 differs from 0.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return math.Float64bits(v.f) == math.Float64bits(o.f)
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for i := range v.obj {
			if v.obj[i].Name != o.obj[i].Name || !v.obj[i].Value.Equal(o.obj[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the value as compact JSON-like text for debugging and
// tooling output. It is not a serialization format.
func (v Value) String() string {
	var sb strings.Builder
	v.render(&sb)
	return sb.String()
}

func (v Value) render(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.render(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, m := range v.obj {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(m.Name))
			sb.WriteByte(':')
			m.Value.render(sb)
		}
		sb.WriteByte('}')
	}
}
