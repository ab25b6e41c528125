package arcprefs

// archive.go implements the settings archive: a single-file snapshot for
// transferring settings between installs. Unlike the settings file itself,
// the archive is self-describing and integrity-checked:
//
//	magic "APRF" | version byte | compression type byte |
//	4-byte BE payload length | payload | 8-byte BE XXH3-64 of payload
//
// The payload is the uncompressed outer serialization, compressed with the
// codec named in the header.

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"

	"github.com/aalhour/arcprefs/internal/compression"
	"github.com/aalhour/arcprefs/internal/encoding"
	"github.com/aalhour/arcprefs/internal/logging"
)

// Compression selects the archive payload codec.
type Compression = compression.Type

// Archive payload codecs.
const (
	// NoCompression stores the payload raw.
	NoCompression = compression.NoCompression
	// SnappyCompression compresses the payload with Snappy.
	SnappyCompression = compression.SnappyCompression
	// LZ4Compression compresses the payload with LZ4.
	LZ4Compression = compression.LZ4Compression
	// DeflateCompression compresses the payload with zlib-wrapped DEFLATE.
	DeflateCompression = compression.DeflateCompression
)

const (
	archiveMagic   = "APRF"
	archiveVersion = byte(1)
)

var (
	// ErrArchiveFormat is returned for a bad magic, version, codec byte, or
	// truncated archive framing.
	ErrArchiveFormat = errors.New("arcprefs: invalid archive")

	// ErrArchiveChecksum is returned when the payload checksum does not
	// match the footer.
	ErrArchiveChecksum = errors.New("arcprefs: archive checksum mismatch")
)

// WriteArchive serializes values into an archive on w.
func WriteArchive(w io.Writer, values map[string]Value, c Compression) error {
	if !c.IsSupported() {
		return fmt.Errorf("%w: compression %s", ErrArchiveFormat, c)
	}

	raw, err := Encode(values, false)
	if err != nil {
		return err
	}
	payload, err := compression.Compress(c, raw)
	if err != nil {
		return err
	}

	buf := make([]byte, 0, len(archiveMagic)+2+4+len(payload)+8)
	buf = append(buf, archiveMagic...)
	buf = append(buf, archiveVersion, byte(c))
	buf = encoding.AppendFixed32(buf, uint32(len(payload)))
	buf = append(buf, payload...)
	buf = encoding.AppendFixed64(buf, xxh3.Hash(payload))

	_, err = w.Write(buf)
	return err
}

// ReadArchive parses an archive from r and returns the settings mapping.
// The checksum is verified before the payload is decompressed or decoded.
func ReadArchive(r io.Reader) (map[string]Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	rd := encoding.NewReader(data)

	magic, err := rd.Bytes(len(archiveMagic))
	if err != nil || string(magic) != archiveMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrArchiveFormat)
	}
	version, err := rd.Uint8()
	if err != nil || version != archiveVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrArchiveFormat, version)
	}
	codecByte, err := rd.Uint8()
	if err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrArchiveFormat)
	}
	codec := Compression(codecByte)
	if !codec.IsSupported() {
		return nil, fmt.Errorf("%w: unknown compression %d", ErrArchiveFormat, codecByte)
	}
	length, err := rd.Int32()
	if err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrArchiveFormat)
	}
	if length < 0 || int(length) > rd.Remaining() {
		return nil, fmt.Errorf("%w: payload length %d", ErrArchiveFormat, length)
	}
	payload, err := rd.Bytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("%w: truncated payload", ErrArchiveFormat)
	}
	sum, err := rd.Int64()
	if err != nil {
		return nil, fmt.Errorf("%w: missing checksum", ErrArchiveFormat)
	}

	if uint64(sum) != xxh3.Hash(payload) {
		return nil, ErrArchiveChecksum
	}

	raw, err := compression.Decompress(codec, payload)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Export writes the table to an archive file at path.
func (s *Settings) Export(path string, c Compression) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteArchive(f, s.values, c); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.logger.Infof(logging.NSArchive+"exported %d entries to %s (%s)", len(s.values), path, c)
	return nil
}

// Import replaces the table's contents with the entries of an archive file.
func (s *Settings) Import(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	values, err := ReadArchive(f)
	if err != nil {
		return err
	}
	s.values = values
	s.dirty = true
	s.logger.Infof(logging.NSArchive+"imported %d entries from %s", len(values), path)
	return nil
}
