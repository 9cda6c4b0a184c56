// Package register implements the named clipboard slots used by yank,
// delete, change, and put commands.
package register

import (
	"errors"
	"unicode"
)

// Names of the special registers.
const (
	Unnamed     = '"'
	LastYank    = '0'
	SmallDelete = '-'
	BlackHole   = '_'
)

// ErrInvalidName reports a register name outside the supported set.
var ErrInvalidName = errors.New("invalid register name")

// Content is a register's stored text plus its wise-ness. Linewise
// content came from a line-oriented operation and pastes as whole lines.
type Content struct {
	Text     string
	Linewise bool
}

// IsEmpty reports whether the register holds nothing.
func (c Content) IsEmpty() bool { return c.Text == "" }

// Store holds all registers: the unnamed register, the numbered
// registers 0-9, the named registers a-z, plus - and the black hole.
type Store struct {
	unnamed     Content
	lastYank    Content
	smallDelete Content
	numbered    [9]Content // 1-9, rotating delete history
	named       map[rune]Content
}

// NewStore creates an empty register store.
func NewStore() *Store {
	return &Store{named: make(map[rune]Content)}
}

// ValidName reports whether name designates a register this store
// understands: " 0-9 a-z A-Z - _.
func ValidName(name rune) bool {
	switch {
	case name == Unnamed, name == SmallDelete, name == BlackHole:
		return true
	case name >= '0' && name <= '9':
		return true
	case name >= 'a' && name <= 'z':
		return true
	case name >= 'A' && name <= 'Z':
		return true
	}
	return false
}

// Get returns the content of the named register. Uppercase names read
// the corresponding lowercase register. The black hole always reads
// empty.
func (s *Store) Get(name rune) (Content, error) {
	switch {
	case name == Unnamed:
		return s.unnamed, nil
	case name == BlackHole:
		return Content{}, nil
	case name == SmallDelete:
		return s.smallDelete, nil
	case name == '0':
		return s.lastYank, nil
	case name >= '1' && name <= '9':
		return s.numbered[name-'1'], nil
	case name >= 'a' && name <= 'z':
		return s.named[name], nil
	case name >= 'A' && name <= 'Z':
		return s.named[unicode.ToLower(name)], nil
	}
	return Content{}, ErrInvalidName
}

// Set writes content to the named register and mirrors it into the
// unnamed register. Uppercase names append to the lowercase register
// instead of replacing it. Writes to the black hole discard the text
// without touching any register.
func (s *Store) Set(name rune, c Content) error {
	switch {
	case name == BlackHole:
		return nil
	case name == Unnamed:
		s.unnamed = c
	case name == SmallDelete:
		s.smallDelete = c
		s.unnamed = c
	case name == '0':
		s.lastYank = c
		s.unnamed = c
	case name >= '1' && name <= '9':
		s.numbered[name-'1'] = c
		s.unnamed = c
	case name >= 'a' && name <= 'z':
		s.named[name] = c
		s.unnamed = c
	case name >= 'A' && name <= 'Z':
		lower := unicode.ToLower(name)
		prev := s.named[lower]
		merged := Content{Linewise: prev.Linewise || c.Linewise}
		if merged.Linewise && prev.Text != "" && c.Linewise {
			merged.Text = prev.Text + "\n" + c.Text
		} else {
			merged.Text = prev.Text + c.Text
		}
		s.named[lower] = merged
		s.unnamed = merged
	default:
		return ErrInvalidName
	}
	return nil
}

// RecordYank stores yanked text: the target register (or register 0
// when unnamed) plus the unnamed register.
func (s *Store) RecordYank(name rune, c Content) error {
	if name == Unnamed {
		name = '0'
	}
	return s.Set(name, c)
}

// RecordDelete stores deleted text. Named targets behave like Set. For
// the default target, linewise or multi-line deletions rotate through
// registers 1-9 with the newest in 1, while small (within-line)
// deletions go to the - register. Either way the unnamed register gets
// the text.
func (s *Store) RecordDelete(name rune, c Content) error {
	if name != Unnamed {
		return s.Set(name, c)
	}
	if c.Linewise || containsNewline(c.Text) {
		s.shiftNumbered(c)
		s.unnamed = c
		return nil
	}
	return s.Set(SmallDelete, c)
}

// shiftNumbered pushes content into register 1, moving 1-8 down to 2-9.
func (s *Store) shiftNumbered(c Content) {
	copy(s.numbered[1:], s.numbered[:len(s.numbered)-1])
	s.numbered[0] = c
}

// Export returns every non-empty register keyed by name, for
// serialization.
func (s *Store) Export() map[rune]Content {
	out := make(map[rune]Content)
	if !s.unnamed.IsEmpty() {
		out[Unnamed] = s.unnamed
	}
	if !s.lastYank.IsEmpty() {
		out['0'] = s.lastYank
	}
	if !s.smallDelete.IsEmpty() {
		out[SmallDelete] = s.smallDelete
	}
	for i, c := range s.numbered {
		if !c.IsEmpty() {
			out[rune('1'+i)] = c
		}
	}
	for name, c := range s.named {
		if !c.IsEmpty() {
			out[name] = c
		}
	}
	return out
}

// Import restores registers from an Export map, bypassing the unnamed
// mirroring and delete rotation.
func (s *Store) Import(regs map[rune]Content) error {
	for name, c := range regs {
		switch {
		case name == Unnamed:
			s.unnamed = c
		case name == '0':
			s.lastYank = c
		case name == SmallDelete:
			s.smallDelete = c
		case name >= '1' && name <= '9':
			s.numbered[name-'1'] = c
		case name >= 'a' && name <= 'z':
			s.named[name] = c
		default:
			return ErrInvalidName
		}
	}
	return nil
}

func containsNewline(text string) bool {
	for _, r := range text {
		if r == '\n' {
			return true
		}
	}
	return false
}
