package arcprefs

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func archiveFixture() map[string]Value {
	return map[string]Value{
		"wave":    Int(5),
		"enabled": Bool(true),
		"name":    String("lancer"),
		"blob":    Binary(bytes.Repeat([]byte{0xAB}, 64)),
	}
}

func TestArchiveRoundTripAllCodecs(t *testing.T) {
	values := archiveFixture()
	for _, c := range []Compression{NoCompression, SnappyCompression, LZ4Compression, DeflateCompression} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteArchive(&buf, values, c); err != nil {
				t.Fatalf("WriteArchive: %v", err)
			}
			got, err := ReadArchive(&buf)
			if err != nil {
				t.Fatalf("ReadArchive: %v", err)
			}
			if !valuesEqual(got, values) {
				t.Errorf("round trip mismatch: %v", got)
			}
		})
	}
}

func TestArchiveHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteArchive(&buf, archiveFixture(), SnappyCompression); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if string(data[:4]) != "APRF" {
		t.Errorf("magic = %q", data[:4])
	}
	if data[4] != 1 {
		t.Errorf("version = %d", data[4])
	}
	if Compression(data[5]) != SnappyCompression {
		t.Errorf("codec byte = %d", data[5])
	}
}

func TestArchiveChecksumDetectsCorruption(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteArchive(&buf, archiveFixture(), NoCompression); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	// Flip one payload byte past the header.
	data[10] ^= 0x01

	if _, err := ReadArchive(bytes.NewReader(data)); !errors.Is(err, ErrArchiveChecksum) {
		t.Errorf("got %v, want ErrArchiveChecksum", err)
	}
}

func TestArchiveFormatErrors(t *testing.T) {
	good := func() []byte {
		var buf bytes.Buffer
		if err := WriteArchive(&buf, archiveFixture(), NoCompression); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}

	t.Run("bad magic", func(t *testing.T) {
		data := good()
		data[0] = 'X'
		if _, err := ReadArchive(bytes.NewReader(data)); !errors.Is(err, ErrArchiveFormat) {
			t.Errorf("got %v, want ErrArchiveFormat", err)
		}
	})

	t.Run("bad version", func(t *testing.T) {
		data := good()
		data[4] = 99
		if _, err := ReadArchive(bytes.NewReader(data)); !errors.Is(err, ErrArchiveFormat) {
			t.Errorf("got %v, want ErrArchiveFormat", err)
		}
	})

	t.Run("bad codec", func(t *testing.T) {
		data := good()
		data[5] = 0x7F
		if _, err := ReadArchive(bytes.NewReader(data)); !errors.Is(err, ErrArchiveFormat) {
			t.Errorf("got %v, want ErrArchiveFormat", err)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		data := good()
		if _, err := ReadArchive(bytes.NewReader(data[:len(data)-4])); !errors.Is(err, ErrArchiveFormat) {
			t.Errorf("got %v, want ErrArchiveFormat", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := ReadArchive(bytes.NewReader(nil)); !errors.Is(err, ErrArchiveFormat) {
			t.Errorf("got %v, want ErrArchiveFormat", err)
		}
	})
}

func TestWriteArchiveUnsupportedCodec(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteArchive(&buf, archiveFixture(), Compression(42)); !errors.Is(err, ErrArchiveFormat) {
		t.Errorf("got %v, want ErrArchiveFormat", err)
	}
}

func TestExportImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.aprf")

	src := FromValues(archiveFixture())
	if err := src.Export(path, LZ4Compression); err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := New()
	dst.PutInt("stale", 1)
	if err := dst.Import(path); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if dst.Has("stale") {
		t.Error("Import should replace existing contents")
	}
	if !valuesEqual(dst.Values(), src.Values()) {
		t.Errorf("import mismatch: %v", dst.Values())
	}
	if !dst.Dirty() {
		t.Error("Import should mark the table dirty")
	}
}
