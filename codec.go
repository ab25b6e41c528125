package arcprefs

// codec.go implements the outer settings container: a 4-byte entry count
// followed by (key, tag, payload) entries, the whole blob optionally
// DEFLATE-compressed.
//
// Compression carries no flag on the wire. Decode attempts decompression
// and treats the input as raw when that fails; callers must not present raw
// data that coincidentally parses as valid compressed input.
//
// Reference: Arc (Mindustry v146) arc/Settings.java loadValues/saveValues

import (
	"errors"
	"fmt"

	"github.com/aalhour/arcprefs/internal/compression"
	"github.com/aalhour/arcprefs/internal/encoding"
)

var (
	// ErrUnknownType is returned when decoding encounters a tag byte outside
	// the six container kinds.
	ErrUnknownType = errors.New("arcprefs: unknown settings value type")

	// ErrUnsupportedType is returned when encoding a Value whose tag is not
	// one of the six container kinds.
	ErrUnsupportedType = errors.New("arcprefs: unsupported settings value type")
)

// Decode parses a settings blob into a key/value mapping. Duplicate keys
// keep the last occurrence. Any failure aborts the whole decode; a partial
// mapping is never returned.
func Decode(raw []byte) (map[string]Value, error) {
	data := compression.MaybeInflate(raw)
	r := encoding.NewReader(data)

	count, err := r.Int32()
	if err != nil {
		return nil, err
	}
	// A negative count reads as zero entries, matching the deployed loader's
	// count-driven loop. The count comes off the wire; cap the initial
	// allocation.
	values := make(map[string]Value, min(max(int(count), 0), 1024))

	for i := int32(0); i < count; i++ {
		key, err := r.UTF()
		if err != nil {
			return nil, err
		}
		tag, err := r.Uint8()
		if err != nil {
			return nil, err
		}

		var v Value
		switch Type(tag) {
		case TypeBool:
			b, err := r.Uint8()
			if err != nil {
				return nil, err
			}
			v = Bool(b != 0)

		case TypeInt:
			n, err := r.Int32()
			if err != nil {
				return nil, err
			}
			v = Int(n)

		case TypeLong:
			n, err := r.Int64()
			if err != nil {
				return nil, err
			}
			v = Long(n)

		case TypeFloat:
			f, err := r.Float32()
			if err != nil {
				return nil, err
			}
			v = Float(f)

		case TypeString:
			s, err := r.UTF()
			if err != nil {
				return nil, err
			}
			v = String(s)

		case TypeBinary:
			n, err := r.Int32()
			if err != nil {
				return nil, err
			}
			if n < 0 || int(n) > r.Remaining() {
				return nil, encoding.ErrUnexpectedEOF
			}
			b, err := r.Bytes(int(n))
			if err != nil {
				return nil, err
			}
			// Copy out of the (possibly pooled) decode buffer.
			v = Binary(append([]byte(nil), b...))

		default:
			return nil, fmt.Errorf("%w: 0x%02x for key %q", ErrUnknownType, tag, key)
		}

		values[key] = v
	}

	return values, nil
}

// Encode serializes a key/value mapping. Entries are written in the map's
// own iteration order; order is not semantically significant, only shape and
// content are. When compress is set the serialization is DEFLATE-compressed
// (any level is acceptable, decoding does not depend on it).
func Encode(values map[string]Value, compress bool) ([]byte, error) {
	buf := encoding.AppendInt32(nil, int32(len(values)))

	var err error
	for key, v := range values {
		if buf, err = encoding.AppendUTF(buf, key); err != nil {
			return nil, err
		}
		if !v.typ.valid() {
			return nil, fmt.Errorf("%w: %s for key %q", ErrUnsupportedType, v.typ, key)
		}
		buf = append(buf, byte(v.typ))

		switch v.typ {
		case TypeBool:
			if v.b {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		case TypeInt:
			buf = encoding.AppendInt32(buf, v.i32)
		case TypeLong:
			buf = encoding.AppendInt64(buf, v.i64)
		case TypeFloat:
			buf = encoding.AppendFloat32(buf, v.f32)
		case TypeString:
			if buf, err = encoding.AppendUTF(buf, v.str); err != nil {
				return nil, err
			}
		case TypeBinary:
			buf = encoding.AppendInt32(buf, int32(len(v.bin)))
			buf = append(buf, v.bin...)
		}
	}

	if compress {
		return compression.Deflate(buf), nil
	}
	return buf, nil
}
