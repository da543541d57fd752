package backref

import (
	"strings"
	"unicode/utf8"
)

// Cursor is the Input Cursor collaborator: read characters by index, compare
// regions, and test case-fold-aware equality. The host owns the concrete
// input representation (string, []byte, a rope, ...); the engine only needs
// this interface.
type Cursor interface {
	// CharAt returns the rune starting at byte/char index i and its width in
	// index units, or (utf8.RuneError, 0) if i is out of range.
	CharAt(i int) (r rune, width int)

	// Length returns the input length in index units.
	Length() int

	// RegionMatches reports whether the length-sized regions starting at a
	// and b are equal, optionally folding case with the default folding
	// table. It returns false (never an error) when either region runs past
	// the input.
	RegionMatches(a, b, length int, caseFold bool) bool

	// PrevWidth returns the width in index units of the rune ending at index
	// i (i.e. the rune a backward scan at i would consume), or 0 at the
	// start of input. Used by backward (lookbehind) execution.
	PrevWidth(i int) int
}

// StringCursor is the default Cursor implementation, operating over a Go
// string. compact selects a single-byte (Latin-1-style) decode fast path
// instead of full UTF-8 decoding; its only effect is on character decoding.
// It is set once, by NewStringCursor.
type StringCursor struct {
	s       string
	compact bool
}

// NewStringCursor wraps s for use as a Cursor. compactStringHint is an
// opaque boolean: when true, every index is assumed to address a single
// byte/char (no multi-unit runes), which is both faster and how hosts
// represent already-Latin-1 strings.
func NewStringCursor(s string, compactStringHint bool) *StringCursor {
	return &StringCursor{s: s, compact: compactStringHint}
}

// CharAt implements Cursor.
func (c *StringCursor) CharAt(i int) (rune, int) {
	if i < 0 || i >= len(c.s) {
		return utf8.RuneError, 0
	}
	if c.compact {
		return rune(c.s[i]), 1
	}
	r, w := utf8.DecodeRuneInString(c.s[i:])
	return r, w
}

// Length implements Cursor.
func (c *StringCursor) Length() int {
	return len(c.s)
}

// PrevWidth implements Cursor.
func (c *StringCursor) PrevWidth(i int) int {
	if i <= 0 || i > len(c.s) {
		return 0
	}
	if c.compact {
		return 1
	}
	// Walk back over UTF-8 continuation bytes to find the rune start.
	j := i - 1
	for j > 0 && isUTF8Continuation(c.s[j]) {
		j--
	}
	return i - j
}

func isUTF8Continuation(b byte) bool {
	return b&0xC0 == 0x80
}

// RegionMatches implements Cursor.
func (c *StringCursor) RegionMatches(a, b, length int, caseFold bool) bool {
	if length == 0 {
		return true
	}
	if a < 0 || b < 0 || a+length > len(c.s) || b+length > len(c.s) {
		return false
	}
	ra, rb := c.s[a:a+length], c.s[b:b+length]
	if !caseFold {
		return ra == rb
	}
	return equalFoldDefault(ra, rb)
}

// equalFoldDefault is the "default folding" pass RegionMatches uses before
// the engine falls back to the char-by-char equalsIgnoreCase predicate
// described in §6. There is no third-party simple-case-folding primitive in
// the example corpus (coregex bakes ASCII folding into the NFA at compile
// time via regexp/syntax.FoldCase rather than folding at match time), so this
// uses the standard library's strings.EqualFold, which implements Unicode
// simple case folding.
func equalFoldDefault(a, b string) bool {
	return strings.EqualFold(a, b)
}
