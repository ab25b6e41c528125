// Package encoding provides binary encoding/decoding primitives that are
// bit-compatible with the Java DataOutputStream framing used by the Arc
// engine's settings files.
//
// All multi-byte integers are encoded in big-endian format. Floating-point
// values are encoded as their IEEE-754 bit pattern, never via numeric
// conversion. Strings use the legacy writeUTF framing: a 2-byte unsigned
// big-endian byte-length prefix followed by that many UTF-8 bytes (the
// prefix counts encoded bytes, not code points).
//
// Reference: Arc (Mindustry v146)
//   - java.io.DataOutputStream writeInt/writeLong/writeFloat/writeUTF
//   - arc/Settings.java loadValues/saveValues
package encoding

import (
	"encoding/binary"
	"errors"
	"math"
)

// MaxUTFLength is the maximum encoded byte length of a length-prefixed string.
const MaxUTFLength = 65535

var (
	// ErrUnexpectedEOF is returned when a read runs past the end of the input.
	ErrUnexpectedEOF = errors.New("encoding: unexpected end of input")

	// ErrStringTooLong is returned when a string's UTF-8 encoding exceeds
	// MaxUTFLength bytes.
	ErrStringTooLong = errors.New("encoding: string exceeds 65535 encoded bytes")
)

// -----------------------------------------------------------------------------
// Fixed-width encoding (big-endian)
// -----------------------------------------------------------------------------

// EncodeFixed16 encodes a uint16 into a 2-byte big-endian buffer.
// REQUIRES: dst has at least 2 bytes.
func EncodeFixed16(dst []byte, value uint16) {
	binary.BigEndian.PutUint16(dst, value)
}

// DecodeFixed16 decodes a uint16 from a 2-byte big-endian buffer.
// REQUIRES: src has at least 2 bytes.
func DecodeFixed16(src []byte) uint16 {
	return binary.BigEndian.Uint16(src)
}

// EncodeFixed32 encodes a uint32 into a 4-byte big-endian buffer.
// REQUIRES: dst has at least 4 bytes.
func EncodeFixed32(dst []byte, value uint32) {
	binary.BigEndian.PutUint32(dst, value)
}

// DecodeFixed32 decodes a uint32 from a 4-byte big-endian buffer.
// REQUIRES: src has at least 4 bytes.
func DecodeFixed32(src []byte) uint32 {
	return binary.BigEndian.Uint32(src)
}

// EncodeFixed64 encodes a uint64 into an 8-byte big-endian buffer.
// REQUIRES: dst has at least 8 bytes.
func EncodeFixed64(dst []byte, value uint64) {
	binary.BigEndian.PutUint64(dst, value)
}

// DecodeFixed64 decodes a uint64 from an 8-byte big-endian buffer.
// REQUIRES: src has at least 8 bytes.
func DecodeFixed64(src []byte) uint64 {
	return binary.BigEndian.Uint64(src)
}

// -----------------------------------------------------------------------------
// Appending variants (for building serialized blobs)
// -----------------------------------------------------------------------------

// AppendFixed16 appends a big-endian uint16 to dst and returns the extended slice.
func AppendFixed16(dst []byte, value uint16) []byte {
	return binary.BigEndian.AppendUint16(dst, value)
}

// AppendFixed32 appends a big-endian uint32 to dst and returns the extended slice.
func AppendFixed32(dst []byte, value uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, value)
}

// AppendFixed64 appends a big-endian uint64 to dst and returns the extended slice.
func AppendFixed64(dst []byte, value uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, value)
}

// AppendInt32 appends a big-endian int32 to dst and returns the extended slice.
func AppendInt32(dst []byte, value int32) []byte {
	return AppendFixed32(dst, uint32(value))
}

// AppendInt64 appends a big-endian int64 to dst and returns the extended slice.
func AppendInt64(dst []byte, value int64) []byte {
	return AppendFixed64(dst, uint64(value))
}

// AppendFloat32 appends the IEEE-754 bit pattern of a float32, big-endian.
func AppendFloat32(dst []byte, value float32) []byte {
	return AppendFixed32(dst, math.Float32bits(value))
}

// AppendFloat64 appends the IEEE-754 bit pattern of a float64, big-endian.
func AppendFloat64(dst []byte, value float64) []byte {
	return AppendFixed64(dst, math.Float64bits(value))
}

// AppendUTF appends a length-prefixed UTF-8 string to dst.
// Format: [uint16 byte length][UTF-8 bytes]
// Returns ErrStringTooLong if the encoded length exceeds MaxUTFLength.
func AppendUTF(dst []byte, s string) ([]byte, error) {
	if len(s) > MaxUTFLength {
		return dst, ErrStringTooLong
	}
	dst = AppendFixed16(dst, uint16(len(s)))
	return append(dst, s...), nil
}

// -----------------------------------------------------------------------------
// Cursor-based decoding
// -----------------------------------------------------------------------------

// Reader is a sequential cursor over a byte slice. All reads consume from the
// current position and fail with ErrUnexpectedEOF when the input is exhausted.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Pos returns the current read offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, ErrUnexpectedEOF
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

// Uint16 reads a big-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, ErrUnexpectedEOF
	}
	v := DecodeFixed16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// Int16 reads a big-endian int16.
func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

// Int32 reads a big-endian int32.
func (r *Reader) Int32() (int32, error) {
	if r.Remaining() < 4 {
		return 0, ErrUnexpectedEOF
	}
	v := DecodeFixed32(r.data[r.pos:])
	r.pos += 4
	return int32(v), nil
}

// Int64 reads a big-endian int64.
func (r *Reader) Int64() (int64, error) {
	if r.Remaining() < 8 {
		return 0, ErrUnexpectedEOF
	}
	v := DecodeFixed64(r.data[r.pos:])
	r.pos += 8
	return int64(v), nil
}

// Float32 reads a big-endian IEEE-754 float32 by bit reinterpretation.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Int32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

// Float64 reads a big-endian IEEE-754 float64 by bit reinterpretation.
func (r *Reader) Float64() (float64, error) {
	v, err := r.Int64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

// Bytes reads exactly n bytes. The returned slice aliases the input.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

// UTF reads a length-prefixed UTF-8 string.
func (r *Reader) UTF() (string, error) {
	n, err := r.Uint16()
	if err != nil {
		return "", err
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
