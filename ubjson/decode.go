package ubjson

import (
	"errors"
	"fmt"

	"github.com/aalhour/arcprefs/internal/encoding"
)

// Wire markers. These are the ASCII tag bytes of the deployed format; every
// value is preceded by exactly one of them, except untagged elements inside
// type-optimized containers and object keys (which carry only a size marker).
const (
	markerNull        byte = 'Z'
	markerTrue        byte = 'T'
	markerFalse       byte = 'F'
	markerInt8        byte = 'i'
	markerUint8       byte = 'U'
	markerInt16       byte = 'I'
	markerInt32       byte = 'l'
	markerInt64       byte = 'L'
	markerFloat32     byte = 'd'
	markerFloat64     byte = 'D'
	markerChar        byte = 'C'
	markerString      byte = 'S'
	markerArrayStart  byte = '['
	markerArrayEnd    byte = ']'
	markerObjectStart byte = '{'
	markerObjectEnd   byte = '}'
	markerType        byte = '$'
	markerCount       byte = '#'
)

var (
	// ErrUnknownMarker is returned when a byte read in tag position is not
	// one of the recognized markers.
	ErrUnknownMarker = errors.New("ubjson: unknown marker")

	// ErrInvalidLength is returned when a string or container length decodes
	// to a negative value.
	ErrInvalidLength = errors.New("ubjson: negative length")
)

// Decode decodes a single tagged value from data. Trailing bytes after the
// value are ignored, matching the reader of the deployed format.
func Decode(data []byte) (Value, error) {
	r := encoding.NewReader(data)
	tag, err := r.Uint8()
	if err != nil {
		return Value{}, err
	}
	return decodeValue(r, tag)
}

// decodeValue decodes the payload of a value whose tag byte has already been
// consumed. Container tags recurse.
func decodeValue(r *encoding.Reader, tag byte) (Value, error) {
	switch tag {
	case markerNull:
		return Null(), nil

	case markerTrue:
		return Bool(true), nil

	case markerFalse:
		return Bool(false), nil

	case markerInt8:
		b, err := r.Uint8()
		if err != nil {
			return Value{}, err
		}
		return Int(int64(int8(b))), nil

	case markerUint8:
		b, err := r.Uint8()
		if err != nil {
			return Value{}, err
		}
		return Int(int64(b)), nil

	case markerInt16:
		v, err := r.Int16()
		if err != nil {
			return Value{}, err
		}
		return Int(int64(v)), nil

	case markerInt32:
		v, err := r.Int32()
		if err != nil {
			return Value{}, err
		}
		return Int(int64(v)), nil

	case markerInt64:
		v, err := r.Int64()
		if err != nil {
			return Value{}, err
		}
		return Int(v), nil

	case markerFloat32:
		v, err := r.Float32()
		if err != nil {
			return Value{}, err
		}
		// float32 -> float64 widening is exact.
		return Float(float64(v)), nil

	case markerFloat64:
		v, err := r.Float64()
		if err != nil {
			return Value{}, err
		}
		return Float(v), nil

	case markerChar:
		// Chars travel as a 16-bit code unit and surface as a one-character
		// string; the encoder never produces this marker.
		v, err := r.Uint16()
		if err != nil {
			return Value{}, err
		}
		return String(string(rune(v))), nil

	case markerString:
		s, err := decodeString(r)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil

	case markerArrayStart:
		return decodeArray(r)

	case markerObjectStart:
		return decodeObject(r)

	default:
		return Value{}, fmt.Errorf("%w: 0x%02x", ErrUnknownMarker, tag)
	}
}

// decodeLength reads a size-marker byte and its integer payload. The size
// marker reuses the integer tag vocabulary; any other byte is unknown.
func decodeLength(r *encoding.Reader) (int, error) {
	tag, err := r.Uint8()
	if err != nil {
		return 0, err
	}
	return decodeLengthTag(r, tag)
}

// decodeLengthTag reads an integer length whose size-marker byte has already
// been consumed.
func decodeLengthTag(r *encoding.Reader, tag byte) (int, error) {
	var n int64
	switch tag {
	case markerInt8:
		b, err := r.Uint8()
		if err != nil {
			return 0, err
		}
		n = int64(int8(b))
	case markerUint8:
		b, err := r.Uint8()
		if err != nil {
			return 0, err
		}
		n = int64(b)
	case markerInt16:
		v, err := r.Int16()
		if err != nil {
			return 0, err
		}
		n = int64(v)
	case markerInt32:
		v, err := r.Int32()
		if err != nil {
			return 0, err
		}
		n = int64(v)
	case markerInt64:
		v, err := r.Int64()
		if err != nil {
			return 0, err
		}
		n = v
	default:
		return 0, fmt.Errorf("%w: 0x%02x in size position", ErrUnknownMarker, tag)
	}
	if n < 0 {
		return 0, ErrInvalidLength
	}
	return int(n), nil
}

// decodeString reads a size marker plus UTF-8 bytes. Both string values
// (after their S tag) and bare object keys use this layout.
func decodeString(r *encoding.Reader) (string, error) {
	n, err := decodeLength(r)
	if err != nil {
		return "", err
	}
	// A byte length cannot exceed the remaining input; reject it before
	// allocation.
	if n > r.Remaining() {
		return "", encoding.ErrUnexpectedEOF
	}
	b, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeArray decodes an array whose '[' has been consumed. Three mutually
// exclusive forms are disambiguated by the next byte:
//
//	$ <tag> # <len>    type-optimized: len untagged values, no terminator
//	# <len>            counted: len tagged values, no terminator
//	<tagged values> ]  standard: sentinel-terminated
func decodeArray(r *encoding.Reader) (Value, error) {
	tag, err := r.Uint8()
	if err != nil {
		return Value{}, err
	}

	switch tag {
	case markerType:
		elemTag, count, err := decodeOptimizedHeader(r)
		if err != nil {
			return Value{}, err
		}
		// Counts come off the wire; cap the initial allocation.
		elems := make([]Value, 0, min(count, 64))
		for i := 0; i < count; i++ {
			v, err := decodeValue(r, elemTag)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return Array(elems...), nil

	case markerCount:
		count, err := decodeLength(r)
		if err != nil {
			return Value{}, err
		}
		elems := make([]Value, 0, min(count, 64))
		for i := 0; i < count; i++ {
			t, err := r.Uint8()
			if err != nil {
				return Value{}, err
			}
			v, err := decodeValue(r, t)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return Array(elems...), nil

	default:
		var elems []Value
		for tag != markerArrayEnd {
			v, err := decodeValue(r, tag)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
			if tag, err = r.Uint8(); err != nil {
				return Value{}, err
			}
		}
		return Array(elems...), nil
	}
}

// decodeObject decodes an object whose '{' has been consumed. The same three
// forms as arrays apply, over (key, value) pairs. Keys are bare
// size-marker + UTF-8 bytes with no leading S tag; only values carry a
// value-kind tag, and only in the non-type-optimized forms.
func decodeObject(r *encoding.Reader) (Value, error) {
	tag, err := r.Uint8()
	if err != nil {
		return Value{}, err
	}

	switch tag {
	case markerType:
		elemTag, count, err := decodeOptimizedHeader(r)
		if err != nil {
			return Value{}, err
		}
		var members []Member
		for i := 0; i < count; i++ {
			key, err := decodeString(r)
			if err != nil {
				return Value{}, err
			}
			v, err := decodeValue(r, elemTag)
			if err != nil {
				return Value{}, err
			}
			members = putMember(members, Member{Name: key, Value: v})
		}
		return Value{kind: KindObject, obj: members}, nil

	case markerCount:
		count, err := decodeLength(r)
		if err != nil {
			return Value{}, err
		}
		var members []Member
		for i := 0; i < count; i++ {
			key, err := decodeString(r)
			if err != nil {
				return Value{}, err
			}
			t, err := r.Uint8()
			if err != nil {
				return Value{}, err
			}
			v, err := decodeValue(r, t)
			if err != nil {
				return Value{}, err
			}
			members = putMember(members, Member{Name: key, Value: v})
		}
		return Value{kind: KindObject, obj: members}, nil

	default:
		var members []Member
		for tag != markerObjectEnd {
			// The byte just read is the key's size marker.
			n, err := decodeLengthTag(r, tag)
			if err != nil {
				return Value{}, err
			}
			keyBytes, err := r.Bytes(n)
			if err != nil {
				return Value{}, err
			}
			t, err := r.Uint8()
			if err != nil {
				return Value{}, err
			}
			v, err := decodeValue(r, t)
			if err != nil {
				return Value{}, err
			}
			members = putMember(members, Member{Name: string(keyBytes), Value: v})
			if tag, err = r.Uint8(); err != nil {
				return Value{}, err
			}
		}
		return Value{kind: KindObject, obj: members}, nil
	}
}

// decodeOptimizedHeader reads the element tag and count of a type-optimized
// container. The '$' has been consumed; a count marker is mandatory after
// the element tag.
func decodeOptimizedHeader(r *encoding.Reader) (elemTag byte, count int, err error) {
	elemTag, err = r.Uint8()
	if err != nil {
		return 0, 0, err
	}
	b, err := r.Uint8()
	if err != nil {
		return 0, 0, err
	}
	if b != markerCount {
		return 0, 0, fmt.Errorf("%w: 0x%02x after type marker", ErrUnknownMarker, b)
	}
	count, err = decodeLength(r)
	if err != nil {
		return 0, 0, err
	}
	return elemTag, count, nil
}
