// Package mode implements the editor mode state machine: which mode is
// active, which transitions are legal, and the visual selection anchor.
package mode

import (
	"fmt"

	"github.com/mglenn/vimulator/internal/engine/buffer"
)

// Kind identifies an editor mode.
type Kind uint8

const (
	// Normal is the default command mode.
	Normal Kind = iota

	// Insert accepts literal text input.
	Insert

	// VisualChar selects a character range.
	VisualChar

	// VisualLine selects whole lines.
	VisualLine

	// VisualBlock selects a rectangular region.
	VisualBlock

	// Command is the ex command line (: / ?).
	Command
)

// String returns the canonical lowercase mode name.
func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case VisualChar:
		return "visual"
	case VisualLine:
		return "visual-line"
	case VisualBlock:
		return "visual-block"
	case Command:
		return "command"
	}
	return fmt.Sprintf("mode(%d)", uint8(k))
}

// DisplayName returns the status-line label, e.g. "-- INSERT --".
func (k Kind) DisplayName() string {
	switch k {
	case Normal:
		return ""
	case Insert:
		return "-- INSERT --"
	case VisualChar:
		return "-- VISUAL --"
	case VisualLine:
		return "-- VISUAL LINE --"
	case VisualBlock:
		return "-- VISUAL BLOCK --"
	case Command:
		return ""
	}
	return ""
}

// IsVisual reports whether k is one of the visual variants.
func (k Kind) IsVisual() bool {
	return k == VisualChar || k == VisualLine || k == VisualBlock
}

// ChangeCallback is notified after every mode change.
type ChangeCallback func(from, to Kind)

// Machine tracks the active mode and the visual anchor. All transitions
// go through Switch; escape from any mode lands in Normal.
type Machine struct {
	current Kind
	anchor  buffer.Position

	callbacks []ChangeCallback
}

// NewMachine creates a machine starting in Normal mode.
func NewMachine() *Machine {
	return &Machine{current: Normal}
}

// Current returns the active mode.
func (m *Machine) Current() Kind { return m.current }

// OnChange registers a callback invoked after each transition.
func (m *Machine) OnChange(cb ChangeCallback) {
	m.callbacks = append(m.callbacks, cb)
}

// Switch changes the active mode. Switching to the mode already active
// is a no-op except for visual modes, where re-entering with a
// different variant retargets the selection kind and keeps the anchor.
func (m *Machine) Switch(to Kind) {
	if to == m.current {
		return
	}
	from := m.current
	m.current = to
	if !to.IsVisual() {
		m.anchor = buffer.Position{}
	}
	for _, cb := range m.callbacks {
		cb(from, to)
	}
}

// EnterVisual switches into the given visual variant, anchoring the
// selection at pos. When already in a visual mode, only the variant
// changes; the anchor set on first entry is kept.
func (m *Machine) EnterVisual(kind Kind, pos buffer.Position) {
	if !kind.IsVisual() {
		panic(fmt.Sprintf("mode: EnterVisual with %v", kind))
	}
	if !m.current.IsVisual() {
		m.anchor = pos
	}
	m.Switch(kind)
}

// Anchor returns the visual selection anchor. Meaningful only while a
// visual mode is active.
func (m *Machine) Anchor() buffer.Position { return m.anchor }

// SetAnchor moves the visual anchor, used by selection swap commands.
func (m *Machine) SetAnchor(pos buffer.Position) { m.anchor = pos }
