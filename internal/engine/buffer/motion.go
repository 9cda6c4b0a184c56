package buffer

import "unicode"

// MotionKind tags a cursor movement the buffer can resolve.
type MotionKind uint8

const (
	MotionNone MotionKind = iota
	MotionLeft
	MotionRight
	MotionUp
	MotionDown
	MotionWordForward
	MotionWordBack
	MotionWordEnd
	MotionWORDForward
	MotionWORDBack
	MotionWORDEnd
	MotionLineStart
	MotionFirstNonBlank
	MotionLineEnd
	MotionLastNonBlank
	MotionFileStart
	MotionFileEnd
	MotionParaForward
	MotionParaBack
	MotionMatchPair
)

// String returns the motion name used in status output.
func (m MotionKind) String() string {
	switch m {
	case MotionLeft:
		return "left"
	case MotionRight:
		return "right"
	case MotionUp:
		return "up"
	case MotionDown:
		return "down"
	case MotionWordForward:
		return "wordForward"
	case MotionWordBack:
		return "wordBack"
	case MotionWordEnd:
		return "wordEnd"
	case MotionWORDForward:
		return "WORDForward"
	case MotionWORDBack:
		return "WORDBack"
	case MotionWORDEnd:
		return "WORDEnd"
	case MotionLineStart:
		return "lineStart"
	case MotionFirstNonBlank:
		return "firstNonBlank"
	case MotionLineEnd:
		return "lineEnd"
	case MotionLastNonBlank:
		return "lastNonBlank"
	case MotionFileStart:
		return "fileStart"
	case MotionFileEnd:
		return "fileEnd"
	case MotionParaForward:
		return "paraForward"
	case MotionParaBack:
		return "paraBack"
	case MotionMatchPair:
		return "matchPair"
	default:
		return "none"
	}
}

// Move resolves a motion against the count and applies it to the cursor.
// It reports whether the cursor moved at all; boundary motions no-op rather
// than error, and callers use the result to decide whether a pending
// operator has a valid target.
func (b *Buffer) Move(kind MotionKind, count int) bool {
	if count < 1 {
		count = 1
	}
	start := b.cursor
	pos := start

	for i := 0; i < count; i++ {
		next := b.step(kind, pos)
		if next.Equals(pos) {
			break
		}
		pos = next
	}

	b.cursor = b.Clamp(pos)
	return !b.cursor.Equals(start)
}

// Resolve computes where a motion would land without moving the cursor.
func (b *Buffer) Resolve(kind MotionKind, count int) Position {
	if count < 1 {
		count = 1
	}
	pos := b.cursor
	for i := 0; i < count; i++ {
		next := b.step(kind, pos)
		if next.Equals(pos) {
			break
		}
		pos = next
	}
	return b.Clamp(pos)
}

// step applies one repetition of a motion to pos.
func (b *Buffer) step(kind MotionKind, pos Position) Position {
	switch kind {
	case MotionLeft:
		if pos.Col > 0 {
			return Position{Line: pos.Line, Col: pos.Col - 1}
		}
	case MotionRight:
		if pos.Col < b.maxCol(pos.Line) {
			return Position{Line: pos.Line, Col: pos.Col + 1}
		}
	case MotionUp:
		if pos.Line > 0 {
			return b.Clamp(Position{Line: pos.Line - 1, Col: pos.Col})
		}
	case MotionDown:
		if pos.Line < len(b.lines)-1 {
			return b.Clamp(Position{Line: pos.Line + 1, Col: pos.Col})
		}
	case MotionWordForward:
		return b.wordForward(pos, false)
	case MotionWORDForward:
		return b.wordForward(pos, true)
	case MotionWordBack:
		return b.wordBack(pos, false)
	case MotionWORDBack:
		return b.wordBack(pos, true)
	case MotionWordEnd:
		return b.wordEnd(pos, false)
	case MotionWORDEnd:
		return b.wordEnd(pos, true)
	case MotionLineStart:
		return Position{Line: pos.Line, Col: 0}
	case MotionFirstNonBlank:
		return Position{Line: pos.Line, Col: b.firstNonBlank(pos.Line)}
	case MotionLineEnd:
		return Position{Line: pos.Line, Col: b.maxCol(pos.Line)}
	case MotionLastNonBlank:
		return Position{Line: pos.Line, Col: b.lastNonBlank(pos.Line)}
	case MotionFileStart:
		return b.Clamp(Position{Line: 0, Col: b.firstNonBlank(0)})
	case MotionFileEnd:
		last := len(b.lines) - 1
		return b.Clamp(Position{Line: last, Col: b.firstNonBlank(last)})
	case MotionParaForward:
		return b.paragraphForward(pos)
	case MotionParaBack:
		return b.paragraphBack(pos)
	case MotionMatchPair:
		if match, ok := b.matchPairFrom(pos); ok {
			return match
		}
	}
	return pos
}

// MoveToLine places the cursor on the first non-blank of a 0-indexed line,
// clamped to the buffer. Reports whether the cursor moved.
func (b *Buffer) MoveToLine(line int) bool {
	start := b.cursor
	if line < 0 {
		line = 0
	}
	if line >= len(b.lines) {
		line = len(b.lines) - 1
	}
	b.cursor = b.Clamp(Position{Line: line, Col: b.firstNonBlank(line)})
	return !b.cursor.Equals(start)
}

// FindKind distinguishes the four in-line character search motions.
type FindKind uint8

const (
	FindForward  FindKind = iota // f
	FindBackward                 // F
	TillForward                  // t
	TillBackward                 // T
)

// FindChar searches the cursor line for target and moves onto (f/F) or next
// to (t/T) it, count occurrences out. Reports whether the cursor moved; a
// missing character is a boundary no-op.
func (b *Buffer) FindChar(kind FindKind, target rune, count int) bool {
	pos, ok := b.ResolveFind(kind, target, count)
	if !ok || pos.Equals(b.cursor) {
		return false
	}
	b.cursor = b.Clamp(pos)
	return true
}

// ResolveFind computes where f/F/t/T would land without moving the cursor.
// The second result is false when the target is not on the line.
func (b *Buffer) ResolveFind(kind FindKind, target rune, count int) (Position, bool) {
	if count < 1 {
		count = 1
	}
	runes := []rune(b.lines[b.cursor.Line])
	col := b.cursor.Col

	forward := kind == FindForward || kind == TillForward
	for i := 0; i < count; i++ {
		found := -1
		if forward {
			for c := col + 1; c < len(runes); c++ {
				if runes[c] == target {
					found = c
					break
				}
			}
		} else {
			for c := col - 1; c >= 0; c-- {
				if runes[c] == target {
					found = c
					break
				}
			}
		}
		if found < 0 {
			return Position{}, false
		}
		col = found
	}

	switch kind {
	case TillForward:
		col--
	case TillBackward:
		col++
	}
	return Position{Line: b.cursor.Line, Col: col}, true
}

// MatchPair jumps between matching (), [], {} pairs, starting from the first
// bracket at or after the cursor on its line. Reports whether it moved.
func (b *Buffer) MatchPair() bool {
	match, ok := b.matchPairFrom(b.cursor)
	if !ok || match.Equals(b.cursor) {
		return false
	}
	b.cursor = b.Clamp(match)
	return true
}

// matchPairFrom resolves the matching bracket for the first bracket at or
// after pos on its line.
func (b *Buffer) matchPairFrom(pos Position) (Position, bool) {
	runes := []rune(b.lines[pos.Line])
	open := "([{"
	closing := ")]}"

	// Find the first bracket at or after pos.
	bracketCol := -1
	for c := pos.Col; c < len(runes); c++ {
		r := runes[c]
		if containsRune(open, r) || containsRune(closing, r) {
			bracketCol = c
			break
		}
	}
	if bracketCol < 0 {
		return pos, false
	}

	start := Position{Line: pos.Line, Col: bracketCol}
	r := runes[bracketCol]

	if idx := indexRune(open, r); idx >= 0 {
		return b.scanForward(start, r, []rune(closing)[idx])
	}
	idx := indexRune(closing, r)
	return b.scanBack(start, []rune(open)[idx], r)
}

// scanForward finds the closing bracket matching the opener at start.
func (b *Buffer) scanForward(start Position, open, close rune) (Position, bool) {
	depth := 0
	p := start
	for {
		switch b.RuneAt(p) {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return p, true
			}
		}
		n, ok := b.nextPos(p)
		if !ok {
			return start, false
		}
		p = n
	}
}

// scanBack finds the opening bracket matching the closer at start.
func (b *Buffer) scanBack(start Position, open, close rune) (Position, bool) {
	depth := 0
	p := start
	for {
		switch b.RuneAt(p) {
		case close:
			depth++
		case open:
			depth--
			if depth == 0 {
				return p, true
			}
		}
		n, ok := b.prevPos(p)
		if !ok {
			return start, false
		}
		p = n
	}
}

// paragraphForward moves to the next blank line after the cursor, or the
// last line when no blank line follows.
func (b *Buffer) paragraphForward(pos Position) Position {
	for l := pos.Line + 1; l < len(b.lines); l++ {
		if isBlankLine(b.lines[l]) && !isBlankLine(b.lines[l-1]) {
			return Position{Line: l, Col: 0}
		}
	}
	last := len(b.lines) - 1
	return b.Clamp(Position{Line: last, Col: b.maxCol(last)})
}

// paragraphBack moves to the previous blank line before the cursor, or the
// first line.
func (b *Buffer) paragraphBack(pos Position) Position {
	for l := pos.Line - 1; l >= 0; l-- {
		if isBlankLine(b.lines[l]) && (l+1 >= len(b.lines) || !isBlankLine(b.lines[l+1])) {
			return Position{Line: l, Col: 0}
		}
	}
	return Position{Line: 0, Col: 0}
}

// firstNonBlank returns the column of the first non-blank rune on a line,
// or 0 on a blank line.
func (b *Buffer) firstNonBlank(line int) int {
	for i, r := range []rune(b.lines[line]) {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}

// lastNonBlank returns the column of the last non-blank rune on a line.
func (b *Buffer) lastNonBlank(line int) int {
	runes := []rune(b.lines[line])
	for i := len(runes) - 1; i >= 0; i-- {
		if !unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return 0
}

func isBlankLine(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func containsRune(s string, r rune) bool {
	return indexRune(s, r) >= 0
}

func indexRune(s string, r rune) int {
	for i, c := range s {
		if c == r {
			return i
		}
	}
	return -1
}
