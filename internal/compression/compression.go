// Package compression provides compression and decompression for settings
// payloads.
//
// The settings container itself is optionally DEFLATE-compressed with no
// self-describing flag: loading attempts decompression and falls back to
// treating the bytes as raw when that fails. The Java producer writes
// zlib-wrapped DEFLATE (DeflaterOutputStream), so decompression tries the
// zlib framing first and raw DEFLATE second.
//
// Settings archives additionally store a 1-byte compression type indicator
// ahead of the compressed payload, selecting one of the algorithms below.
//
// Reference: Arc (Mindustry v146)
//   - java.util.zip.DeflaterOutputStream / InflaterInputStream
package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
)

// Type represents a compression algorithm for archive payloads.
type Type uint8

const (
	// NoCompression indicates no compression.
	NoCompression Type = 0x0

	// SnappyCompression uses Google Snappy compression.
	SnappyCompression Type = 0x1

	// LZ4Compression uses LZ4 compression.
	LZ4Compression Type = 0x2

	// DeflateCompression uses zlib-wrapped DEFLATE, matching the framing of
	// the settings container itself.
	DeflateCompression Type = 0x3
)

// String returns the human-readable name of the compression type.
func (t Type) String() string {
	switch t {
	case NoCompression:
		return "NoCompression"
	case SnappyCompression:
		return "Snappy"
	case LZ4Compression:
		return "LZ4"
	case DeflateCompression:
		return "Deflate"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// IsSupported returns true if the compression type is supported.
func (t Type) IsSupported() bool {
	switch t {
	case NoCompression, SnappyCompression, LZ4Compression, DeflateCompression:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// Settings container DEFLATE (heuristic, no self-describing flag)
// -----------------------------------------------------------------------------

// Deflate compresses data with zlib-wrapped DEFLATE at the default level.
// Any level is acceptable on the wire; decoding does not depend on it.
func Deflate(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	// Writes to a bytes.Buffer cannot fail.
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

// Inflate decompresses DEFLATE data. It tries the zlib framing first (the
// Java producer's default), then raw DEFLATE.
func Inflate(data []byte) ([]byte, error) {
	if r, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
		out, readErr := io.ReadAll(r)
		_ = r.Close()
		if readErr == nil {
			return out, nil
		}
	}
	r := flate.NewReader(bytes.NewReader(data))
	defer func() { _ = r.Close() }()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return out, nil
}

// MaybeInflate attempts to decompress data and returns the original bytes
// unchanged when decompression fails. Failure here is the designed signal
// that the input was never compressed, not an error. Callers must not
// present raw data that coincidentally parses as valid DEFLATE input.
func MaybeInflate(data []byte) []byte {
	out, err := Inflate(data)
	if err != nil {
		return data
	}
	return out
}

// -----------------------------------------------------------------------------
// Archive codecs
// -----------------------------------------------------------------------------

// Compress compresses data using the specified compression type.
func Compress(t Type, data []byte) ([]byte, error) {
	switch t {
	case NoCompression:
		return data, nil

	case SnappyCompression:
		return snappy.Encode(nil, data), nil

	case LZ4Compression:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 write: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("lz4 close: %w", err)
		}
		return buf.Bytes(), nil

	case DeflateCompression:
		return Deflate(data), nil

	default:
		return nil, fmt.Errorf("unsupported compression type: %s", t)
	}
}

// Decompress decompresses data using the specified compression type.
func Decompress(t Type, data []byte) ([]byte, error) {
	switch t {
	case NoCompression:
		return data, nil

	case SnappyCompression:
		return snappy.Decode(nil, data)

	case LZ4Compression:
		r := lz4.NewReader(bytes.NewReader(data))
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("lz4 read: %w", err)
		}
		return out, nil

	case DeflateCompression:
		return Inflate(data)

	default:
		return nil, fmt.Errorf("unsupported compression type: %s", t)
	}
}
