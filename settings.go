package arcprefs

// settings.go implements the in-memory settings store: a mutable key/value
// table with typed accessors and the bridge into the embedded ubjson format
// for structured sub-objects.
//
// Typed getters never fail: a missing key or a kind mismatch yields the
// caller-supplied default. The same applies to structured reads, so one
// malformed embedded blob cannot fail an entire settings load.

import (
	"slices"

	"github.com/aalhour/arcprefs/internal/logging"
	"github.com/aalhour/arcprefs/ubjson"
)

// Logger is an alias for the logging.Logger interface.
// Any type with Errorf/Warnf/Infof/Debugf methods satisfies it.
type Logger = logging.Logger

// NewStderrLogger returns a Logger writing to stderr at the given verbosity,
// 0 being errors only and 3 including debug output.
func NewStderrLogger(verbosity int) Logger {
	return logging.NewDefaultLogger(logging.Level(verbosity))
}

// Settings is an in-memory settings table bound to an optional file path.
// It has no internal synchronization; concurrent mutation must be serialized
// by the caller.
type Settings struct {
	path   string
	values map[string]Value
	logger logging.Logger
	dirty  bool
}

// New creates an empty settings table. Logging is off by default; wire a
// logger with SetLogger.
func New() *Settings {
	return &Settings{
		values: make(map[string]Value),
		logger: logging.Discard,
	}
}

// FromValues creates a settings table over an existing mapping. The map is
// used directly, not copied.
func FromValues(values map[string]Value) *Settings {
	s := New()
	if values != nil {
		s.values = values
	}
	return s
}

// SetLogger wires a logger for load/save/archive reporting.
func (s *Settings) SetLogger(l Logger) {
	s.logger = logging.OrDefault(l)
}

// SetPath binds the table to a settings file for Load and Save.
func (s *Settings) SetPath(path string) {
	s.path = path
}

// Path returns the bound settings file path.
func (s *Settings) Path() string {
	return s.path
}

// Len returns the number of entries.
func (s *Settings) Len() int {
	return len(s.values)
}

// Dirty reports whether the table has unsaved mutations.
func (s *Settings) Dirty() bool {
	return s.dirty
}

// Has reports whether key is present.
func (s *Settings) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns all keys in sorted order.
func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the raw tagged value for key.
func (s *Settings) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Put stores a raw tagged value.
func (s *Settings) Put(key string, v Value) {
	s.values[key] = v
	s.dirty = true
}

// Remove deletes key if present.
func (s *Settings) Remove(key string) {
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.dirty = true
	}
}

// Clear removes all entries.
func (s *Settings) Clear() {
	clear(s.values)
	s.dirty = true
}

// Values returns the underlying mapping. Mutating it directly bypasses
// dirty tracking.
func (s *Settings) Values() map[string]Value {
	return s.values
}

// -----------------------------------------------------------------------------
// Typed accessors. Getters return def on a missing key or a kind mismatch.
// -----------------------------------------------------------------------------

// GetBool returns the boolean stored at key, or def.
func (s *Settings) GetBool(key string, def bool) bool {
	if v, ok := s.values[key]; ok && v.typ == TypeBool {
		return v.b
	}
	return def
}

// GetInt returns the 32-bit integer stored at key, or def.
func (s *Settings) GetInt(key string, def int32) int32 {
	if v, ok := s.values[key]; ok && v.typ == TypeInt {
		return v.i32
	}
	return def
}

// GetLong returns the 64-bit integer stored at key, or def.
func (s *Settings) GetLong(key string, def int64) int64 {
	if v, ok := s.values[key]; ok && v.typ == TypeLong {
		return v.i64
	}
	return def
}

// GetFloat returns the float stored at key, or def.
func (s *Settings) GetFloat(key string, def float32) float32 {
	if v, ok := s.values[key]; ok && v.typ == TypeFloat {
		return v.f32
	}
	return def
}

// GetString returns the string stored at key, or def.
func (s *Settings) GetString(key, def string) string {
	if v, ok := s.values[key]; ok && v.typ == TypeString {
		return v.str
	}
	return def
}

// GetBytes returns the raw bytes stored at key, or def.
func (s *Settings) GetBytes(key string, def []byte) []byte {
	if v, ok := s.values[key]; ok && v.typ == TypeBinary {
		return v.bin
	}
	return def
}

// PutBool stores a boolean at key.
func (s *Settings) PutBool(key string, v bool) {
	s.Put(key, Bool(v))
}

// PutInt stores a 32-bit integer at key.
func (s *Settings) PutInt(key string, v int32) {
	s.Put(key, Int(v))
}

// PutLong stores a 64-bit integer at key.
func (s *Settings) PutLong(key string, v int64) {
	s.Put(key, Long(v))
}

// PutFloat stores a float at key.
func (s *Settings) PutFloat(key string, v float32) {
	s.Put(key, Float(v))
}

// PutString stores a string at key.
func (s *Settings) PutString(key, v string) {
	s.Put(key, String(v))
}

// PutBytes stores raw bytes at key.
func (s *Settings) PutBytes(key string, v []byte) {
	s.Put(key, Binary(v))
}

// -----------------------------------------------------------------------------
// Structured sub-objects
// -----------------------------------------------------------------------------

// GetStructured decodes the Binary entry at key through the embedded ubjson
// codec. A missing key, a non-Binary entry, or a malformed payload all
// degrade to def; a bad embedded blob never fails the caller.
func (s *Settings) GetStructured(key string, def ubjson.Value) ubjson.Value {
	v, ok := s.values[key]
	if !ok || v.typ != TypeBinary {
		return def
	}
	decoded, err := ubjson.Decode(v.bin)
	if err != nil {
		s.logger.Warnf(logging.NSLoad+"malformed structured payload for %q: %v", key, err)
		return def
	}
	return decoded
}

// PutStructured encodes v through the embedded ubjson codec and stores it as
// a Binary entry at key. Mutation always replaces the whole payload; there
// is no partial in-place patch of nested content.
func (s *Settings) PutStructured(key string, v ubjson.Value) {
	s.Put(key, Binary(ubjson.Encode(v)))
}
