package buffer

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by buffer operations. Out-of-range access indicates a
// caller bug, not a user-input condition, and therefore fails loudly.
var (
	ErrLineOutOfRange = errors.New("line out of range")
	ErrRangeInvalid   = errors.New("invalid range")
)

// Buffer owns the text content as an ordered slice of lines plus a cursor.
// It is exclusively owned by one simulator instance and performs no internal
// locking; callers serialize access.
//
// Invariants: the buffer always holds at least one line (an empty document is
// one empty line), and the cursor is re-clamped before any operation returns.
type Buffer struct {
	lines  []string
	cursor Position

	// pastEOL permits the cursor to sit one past the last character, as
	// Insert mode requires. Normal mode clamps to the last character.
	pastEOL bool
}

// New creates an empty buffer: one empty line, cursor at origin.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// FromString creates a buffer holding the given text.
func FromString(text string) *Buffer {
	b := New()
	b.SetText(text)
	return b
}

// SetText replaces the whole buffer content and resets the cursor to origin.
func (b *Buffer) SetText(text string) {
	if text == "" {
		b.lines = []string{""}
	} else {
		b.lines = strings.Split(text, "\n")
	}
	b.cursor = Position{}
}

// SetLines replaces the whole buffer content with the given lines. The
// buffer takes ownership of the slice. An empty slice becomes one empty
// line, and the cursor is re-clamped in place.
func (b *Buffer) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.lines = lines
	b.cursor = b.Clamp(b.cursor)
}

// Text returns the full buffer content joined with newlines.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// LineCount returns the number of lines. Always >= 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of line n (no newline). Panics when n is out of
// range: that is a programming error in the caller, never user input.
func (b *Buffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		panic(fmt.Sprintf("buffer: line %d out of range [0,%d)", n, len(b.lines)))
	}
	return b.lines[n]
}

// LineLen returns the rune length of line n. Panics like Line on bad input.
func (b *Buffer) LineLen(n int) int {
	return len([]rune(b.Line(n)))
}

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() Position {
	return b.cursor
}

// SetCursor moves the cursor, clamping it into the valid range.
func (b *Buffer) SetCursor(pos Position) {
	b.cursor = b.Clamp(pos)
}

// AllowPastEOL controls whether the cursor may rest one past the last
// character of a line. Insert mode turns this on. Turning it off leaves the
// cursor where it is; the next cursor movement clamps it.
func (b *Buffer) AllowPastEOL(allow bool) {
	b.pastEOL = allow
}

// PastEOLAllowed reports the current end-of-line cursor rule.
func (b *Buffer) PastEOLAllowed() bool {
	return b.pastEOL
}

// Clamp returns pos forced into the valid range for the current cursor rule.
func (b *Buffer) Clamp(pos Position) Position {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(b.lines) {
		pos.Line = len(b.lines) - 1
	}
	max := b.maxCol(pos.Line)
	if pos.Col < 0 {
		pos.Col = 0
	}
	if pos.Col > max {
		pos.Col = max
	}
	return pos
}

// maxCol returns the highest legal column on the given line.
func (b *Buffer) maxCol(line int) int {
	n := len([]rune(b.lines[line]))
	if b.pastEOL || n == 0 {
		return n
	}
	return n - 1
}

// IsValid reports whether pos is a legal cursor position under the current
// end-of-line rule.
func (b *Buffer) IsValid(pos Position) bool {
	if pos.Line < 0 || pos.Line >= len(b.lines) {
		return false
	}
	return pos.Col >= 0 && pos.Col <= b.maxCol(pos.Line)
}

// RuneAt returns the rune at pos, or 0 if pos is past the end of its line.
func (b *Buffer) RuneAt(pos Position) rune {
	runes := []rune(b.Line(pos.Line))
	if pos.Col < 0 || pos.Col >= len(runes) {
		return 0
	}
	return runes[pos.Col]
}
