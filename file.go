package arcprefs

// file.go implements file persistence for a settings table: loading with
// backup-file recovery and atomic saving with backup rotation. The deployed
// system keeps a <path>.backup copy of the last good file and falls back to
// it when the primary fails to load; saves never leave a partial primary.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aalhour/arcprefs/internal/logging"
)

// BackupSuffix is appended to the settings path for the rotated backup copy.
const BackupSuffix = ".backup"

// LoadFile loads the settings file at path. A missing file (and missing
// backup) yields an empty table bound to path, matching first-run behavior.
func LoadFile(path string) (*Settings, error) {
	s := New()
	s.path = path
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads and decodes the bound settings file. When the primary file is
// missing or fails to decode, the backup copy is tried; recovery from the
// backup marks the table dirty so the next save rewrites the primary. Only
// when neither file loads is the primary's error returned.
func (s *Settings) Load() error {
	if s.path == "" {
		return errors.New("arcprefs: no settings path bound")
	}

	primaryErr := s.loadFrom(s.path)
	if primaryErr == nil {
		s.dirty = false
		s.logger.Infof(logging.NSLoad+"loaded %d entries from %s", len(s.values), s.path)
		return nil
	}

	backupPath := s.path + BackupSuffix
	if backupErr := s.loadFrom(backupPath); backupErr == nil {
		s.dirty = true
		s.logger.Warnf(logging.NSLoad+"primary failed (%v), recovered %d entries from %s",
			primaryErr, len(s.values), backupPath)
		return nil
	}

	if errors.Is(primaryErr, fs.ErrNotExist) {
		// First run: no settings written yet.
		s.values = make(map[string]Value)
		s.dirty = false
		s.logger.Debugf(logging.NSLoad+"no settings file at %s, starting empty", s.path)
		return nil
	}

	return fmt.Errorf("arcprefs: load %s: %w", s.path, primaryErr)
}

func (s *Settings) loadFrom(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	values, err := Decode(raw)
	if err != nil {
		return err
	}
	s.values = values
	return nil
}

// Save serializes the table and writes it to the bound path. The write is
// atomic: data lands in a temporary file first, the previous primary is
// rotated to the backup path, and the temporary file is renamed into place.
// On any failure the previous primary or backup remains intact.
func (s *Settings) Save(compress bool) error {
	if s.path == "" {
		return errors.New("arcprefs: no settings path bound")
	}

	data, err := Encode(s.values, compress)
	if err != nil {
		return fmt.Errorf("arcprefs: save %s: %w", s.path, err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("arcprefs: save %s: %w", s.path, err)
	}

	// Rotate the previous good file to the backup path before the new file
	// takes its place.
	if _, err := os.Stat(s.path); err == nil {
		if err := os.Rename(s.path, s.path+BackupSuffix); err != nil {
			return fmt.Errorf("arcprefs: rotate backup for %s: %w", s.path, err)
		}
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("arcprefs: save %s: %w", s.path, err)
	}

	s.dirty = false
	s.logger.Infof(logging.NSSave+"saved %d entries to %s (%d bytes, compress=%v)",
		len(s.values), s.path, len(data), compress)
	return nil
}
