/*
Package arcprefs provides a pure-Go codec and store for the binary settings
files written by Arc-engine games.

Arcprefs targets wire-format compatibility with the Arc engine as of
Mindustry v146: the outer typed key/value container (optionally
DEFLATE-compressed, legacy length-prefixed UTF-8 strings, big-endian
numerics) and the UBJSON subset embedded inside Binary-typed entries.
Files written by arcprefs are intended to load in the game and vice versa.

# Usage

Load a settings file, read and mutate entries through the typed accessors,
and save it back:

	s, err := arcprefs.LoadFile("settings.bin")
	if err != nil {
		// ...
	}
	wave := s.GetInt("wave", 0)
	s.PutBool("enabled", true)
	if err := s.Save(true); err != nil {
		// ...
	}

Structured sub-objects stored inside Binary entries are accessed through
GetStructured and PutStructured, which bridge to the ubjson package.

# Concurrency

A Settings instance is a plain mutable table with no internal locking;
concurrent mutation must be serialized by the caller. Decode and Encode are
whole-blob, in-memory operations.

# Compatibility

The encoder reproduces the deployed writer byte for byte, including its
quirks: numbers always take the minimal width that represents them exactly,
nested containers are always emitted in the standard bracketed form, and
compression is detected heuristically on load rather than flagged.

Reference: Arc (Mindustry v146) arc/Settings.java
*/
package arcprefs
