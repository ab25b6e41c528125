package ubjson

import (
	"math"

	"github.com/aalhour/arcprefs/internal/encoding"
)

// Encode serializes a value tree. The output always uses the standard
// bracketed container form with explicit terminators; the encoder never
// emits the type-optimized or counted forms the decoder accepts. Number
// widths follow the deployed writer exactly, so re-encoding a decoded tree
// reproduces its minimal-width serialization byte for byte.
func Encode(v Value) []byte {
	return Append(nil, v)
}

// Append serializes a value tree onto dst and returns the extended slice.
func Append(dst []byte, v Value) []byte {
	switch v.kind {
	case KindNull:
		return append(dst, markerNull)

	case KindBool:
		if v.b {
			return append(dst, markerTrue)
		}
		return append(dst, markerFalse)

	case KindInt:
		return appendInt(dst, v.i)

	case KindFloat:
		return appendFloat(dst, v.f)

	case KindString:
		dst = append(dst, markerString)
		return appendStringBody(dst, v.s)

	case KindArray:
		dst = append(dst, markerArrayStart)
		for _, e := range v.arr {
			dst = Append(dst, e)
		}
		return append(dst, markerArrayEnd)

	case KindObject:
		dst = append(dst, markerObjectStart)
		for _, m := range v.obj {
			// Keys carry only a size marker, never the S tag.
			dst = appendStringBody(dst, m.Name)
			dst = Append(dst, m.Value)
		}
		return append(dst, markerObjectEnd)

	default:
		// Unreachable: Value kinds form a closed set fixed at construction.
		return append(dst, markerNull)
	}
}

// appendInt emits the narrowest signed marker that represents v exactly:
// Int8, then Int16, then Int32, then Int64. The UInt8 marker is decode-only.
func appendInt(dst []byte, v int64) []byte {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return append(dst, markerInt8, byte(int8(v)))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		dst = append(dst, markerInt16)
		return encoding.AppendFixed16(dst, uint16(int16(v)))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		dst = append(dst, markerInt32)
		return encoding.AppendInt32(dst, int32(v))
	default:
		dst = append(dst, markerInt64)
		return encoding.AppendInt64(dst, v)
	}
}

// appendFloat emits Float32 when narrowing round-trips the value exactly,
// Float64 otherwise. NaN payloads always travel as Float64.
func appendFloat(dst []byte, v float64) []byte {
	if f32 := float32(v); float64(f32) == v {
		dst = append(dst, markerFloat32)
		return encoding.AppendFloat32(dst, f32)
	}
	dst = append(dst, markerFloat64)
	return encoding.AppendFloat64(dst, v)
}

// appendStringBody emits the size marker and UTF-8 bytes shared by string
// values and object keys: the narrowest of Int8, Int16, Int32 for the byte
// length.
func appendStringBody(dst []byte, s string) []byte {
	n := len(s)
	switch {
	case n <= math.MaxInt8:
		dst = append(dst, markerInt8, byte(n))
	case n <= math.MaxInt16:
		dst = append(dst, markerInt16)
		dst = encoding.AppendFixed16(dst, uint16(n))
	default:
		dst = append(dst, markerInt32)
		dst = encoding.AppendInt32(dst, int32(n))
	}
	return append(dst, s...)
}
