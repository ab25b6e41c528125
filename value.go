package arcprefs

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Type is the wire tag of a settings value. Exactly six kinds are
// representable in the container format; the tag byte on the wire always
// matches the variant.
type Type byte

const (
	// TypeBool is a boolean stored as a single byte.
	TypeBool Type = 0
	// TypeInt is a 32-bit big-endian signed integer.
	TypeInt Type = 1
	// TypeLong is a 64-bit big-endian signed integer.
	TypeLong Type = 2
	// TypeFloat is a 32-bit IEEE-754 float stored by bit pattern.
	TypeFloat Type = 3
	// TypeString is a length-prefixed UTF-8 string.
	TypeString Type = 4
	// TypeBinary is a 4-byte length followed by raw bytes.
	TypeBinary Type = 5
)

// String returns the human-readable name of the type.
func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBinary:
		return "binary"
	default:
		return fmt.Sprintf("Type(%d)", byte(t))
	}
}

func (t Type) valid() bool {
	return t <= TypeBinary
}

// Value is a tagged settings value. The tag is fixed at construction, never
// inferred from a payload's runtime type. The zero Value is Bool(false).
type Value struct {
	typ Type
	b   bool
	i32 int32
	i64 int64
	f32 float32
	str string
	bin []byte
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{typ: TypeBool, b: b}
}

// Int returns a 32-bit integer value.
func Int(v int32) Value {
	return Value{typ: TypeInt, i32: v}
}

// Long returns a 64-bit integer value.
func Long(v int64) Value {
	return Value{typ: TypeLong, i64: v}
}

// Float returns a 32-bit float value.
func Float(v float32) Value {
	return Value{typ: TypeFloat, f32: v}
}

// String returns a string value.
func String(s string) Value {
	return Value{typ: TypeString, str: s}
}

// Binary returns a raw-bytes value. The slice is not copied.
func Binary(b []byte) Value {
	return Value{typ: TypeBinary, bin: b}
}

// Type returns the value's wire tag.
func (v Value) Type() Type {
	return v.typ
}

// AsBool returns the boolean payload, or false for any other type.
func (v Value) AsBool() bool {
	return v.typ == TypeBool && v.b
}

// AsInt returns the 32-bit integer payload, or 0 for any other type.
func (v Value) AsInt() int32 {
	if v.typ != TypeInt {
		return 0
	}
	return v.i32
}

// AsLong returns the 64-bit integer payload, or 0 for any other type.
func (v Value) AsLong() int64 {
	if v.typ != TypeLong {
		return 0
	}
	return v.i64
}

// AsFloat returns the float payload, or 0 for any other type.
func (v Value) AsFloat() float32 {
	if v.typ != TypeFloat {
		return 0
	}
	return v.f32
}

// AsString returns the string payload, or "" for any other type.
func (v Value) AsString() string {
	if v.typ != TypeString {
		return ""
	}
	return v.str
}

// AsBinary returns the raw-bytes payload, or nil for any other type.
func (v Value) AsBinary() []byte {
	if v.typ != TypeBinary {
		return nil
	}
	return v.bin
}

// Equal reports whether two values have the same tag and payload. Float
// payloads compare by bit pattern.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeBool:
		return v.b == o.b
	case TypeInt:
		return v.i32 == o.i32
	case TypeLong:
		return v.i64 == o.i64
	case TypeFloat:
		return math.Float32bits(v.f32) == math.Float32bits(o.f32)
	case TypeString:
		return v.str == o.str
	case TypeBinary:
		return bytes.Equal(v.bin, o.bin)
	default:
		return false
	}
}

// String renders the value for debugging and tooling output.
func (v Value) String() string {
	switch v.typ {
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeInt:
		return strconv.FormatInt(int64(v.i32), 10)
	case TypeLong:
		return strconv.FormatInt(v.i64, 10)
	case TypeFloat:
		return strconv.FormatFloat(float64(v.f32), 'g', -1, 32)
	case TypeString:
		return strconv.Quote(v.str)
	case TypeBinary:
		return fmt.Sprintf("<%d bytes>", len(v.bin))
	default:
		return fmt.Sprintf("<invalid %s>", v.typ)
	}
}
