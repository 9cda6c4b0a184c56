package key

import (
	"strings"
	"unicode"
)

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key.
	ModAlt
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Event represents a single key press fed to the simulator.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key) Event {
	return Event{Key: key}
}

// NewCtrlEvent creates a key event for a Ctrl-modified character.
func NewCtrlEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: ModCtrl}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsPlainRune returns true for an unmodified character key.
// Shift is not counted: it is already folded into the character itself.
func (e Event) IsPlainRune() bool {
	return e.IsRune() && e.Modifiers&(ModCtrl|ModAlt) == 0
}

// IsCtrl returns true if this is Ctrl plus the given character.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Modifiers.Has(ModCtrl) && e.Rune == r
}

// IsEscape returns true if this is the Escape key.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsEnter returns true if this is the Enter key.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}

// IsBackspace returns true if this is Backspace.
func (e Event) IsBackspace() bool {
	return e.Key == KeyBackspace && e.Modifiers == ModNone
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// String returns a Vim-style string representation.
// Examples: "a", "A", "<Esc>", "<CR>", "<C-r>", "<Space>"
func (e Event) String() string {
	if e.IsPlainRune() {
		switch e.Rune {
		case ' ':
			return "<Space>"
		case '<':
			return "<lt>"
		default:
			return string(e.Rune)
		}
	}

	var parts []string
	if e.Modifiers.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Modifiers.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Modifiers.Has(ModShift) && !e.IsRune() {
		parts = append(parts, "S")
	}

	var keyName string
	switch e.Key {
	case KeyRune:
		keyName = string(e.Rune)
	case KeyEscape:
		keyName = "Esc"
	case KeyEnter:
		keyName = "CR"
	case KeyTab:
		keyName = "Tab"
	case KeyBackspace:
		keyName = "BS"
	case KeyDelete:
		keyName = "Del"
	default:
		keyName = e.Key.String()
	}
	parts = append(parts, keyName)

	return "<" + strings.Join(parts, "-") + ">"
}
