// Package search implements buffer pattern search and substitution.
package search

import (
	"errors"
	"regexp"

	"github.com/mglenn/vimulator/internal/engine/buffer"
)

// Direction of a search.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

// Reverse returns the opposite direction, used by N.
func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// Search errors.
var (
	ErrNoPattern    = errors.New("no previous search pattern")
	ErrPatternEmpty = errors.New("empty search pattern")
	ErrNotFound     = errors.New("pattern not found")
)

// State holds the last search pattern and direction so n and N can
// repeat it.
type State struct {
	pattern   string
	direction Direction
	re        *regexp.Regexp
}

// NewState creates an empty search state.
func NewState() *State {
	return &State{}
}

// Pattern returns the last search pattern, empty when none is set.
func (s *State) Pattern() string { return s.pattern }

// Direction returns the direction of the last search.
func (s *State) Direction() Direction { return s.direction }

// SetPattern compiles and stores a pattern with its direction.
func (s *State) SetPattern(pattern string, dir Direction) error {
	if pattern == "" {
		return ErrPatternEmpty
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.pattern = pattern
	s.direction = dir
	s.re = re
	return nil
}

// Find locates the next match from pos in the stored direction,
// wrapping around the buffer ends. The match at pos itself never
// counts; repeating a search always advances.
func (s *State) Find(buf *buffer.Buffer, pos buffer.Position) (buffer.Position, error) {
	return s.findDir(buf, pos, s.direction)
}

// FindReverse locates the next match opposite to the stored direction.
func (s *State) FindReverse(buf *buffer.Buffer, pos buffer.Position) (buffer.Position, error) {
	return s.findDir(buf, pos, s.direction.Reverse())
}

func (s *State) findDir(buf *buffer.Buffer, pos buffer.Position, dir Direction) (buffer.Position, error) {
	if s.re == nil {
		return pos, ErrNoPattern
	}
	if dir == Forward {
		return s.findForward(buf, pos)
	}
	return s.findBackward(buf, pos)
}

// findForward scans from just after pos to EOF, then wraps from BOF
// back to pos.
func (s *State) findForward(buf *buffer.Buffer, pos buffer.Position) (buffer.Position, error) {
	count := buf.LineCount()
	for i := 0; i <= count; i++ {
		line := (pos.Line + i) % count
		minCol := -1
		if i == 0 {
			minCol = pos.Col
		}
		if col, ok := firstMatchAfter(s.re, buf.Line(line), minCol); ok {
			return buffer.Position{Line: line, Col: col}, nil
		}
		// The wrap pass revisits the start line for matches at or
		// before the cursor.
		if i == count {
			break
		}
	}
	return pos, ErrNotFound
}

// findBackward scans from just before pos to BOF, then wraps from EOF.
func (s *State) findBackward(buf *buffer.Buffer, pos buffer.Position) (buffer.Position, error) {
	count := buf.LineCount()
	for i := 0; i <= count; i++ {
		line := ((pos.Line-i)%count + count) % count
		maxCol := -1
		if i == 0 {
			maxCol = pos.Col
		}
		if col, ok := lastMatchBefore(s.re, buf.Line(line), maxCol); ok {
			return buffer.Position{Line: line, Col: col}, nil
		}
		if i == count {
			break
		}
	}
	return pos, ErrNotFound
}

// firstMatchAfter returns the rune column of the first match starting
// strictly after minCol, or any match when minCol is -1.
func firstMatchAfter(re *regexp.Regexp, line string, minCol int) (int, bool) {
	for _, loc := range re.FindAllStringIndex(line, -1) {
		col := runeCol(line, loc[0])
		if col > minCol {
			return col, true
		}
	}
	return 0, false
}

// lastMatchBefore returns the rune column of the last match starting
// strictly before maxCol, or the last match when maxCol is -1.
func lastMatchBefore(re *regexp.Regexp, line string, maxCol int) (int, bool) {
	best := -1
	for _, loc := range re.FindAllStringIndex(line, -1) {
		col := runeCol(line, loc[0])
		if maxCol >= 0 && col >= maxCol {
			break
		}
		best = col
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// runeCol converts a byte offset in line to a rune column.
func runeCol(line string, byteOff int) int {
	col := 0
	for off := range line {
		if off >= byteOff {
			break
		}
		col++
	}
	return col
}

// WordPattern builds the pattern * and # use for the word under the
// cursor: whole-word match of the literal text.
func WordPattern(word string) string {
	return `\b` + regexp.QuoteMeta(word) + `\b`
}
