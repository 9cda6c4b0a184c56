package buffer

import "strings"

// InsertAt inserts text at pos. Embedded newlines split the line. The cursor
// moves to the end of the inserted text and the new cursor position is
// returned. A position outside the buffer is a caller bug and returns
// ErrRangeInvalid.
func (b *Buffer) InsertAt(pos Position, text string) (Position, error) {
	if pos.Line < 0 || pos.Line >= len(b.lines) {
		return Position{}, ErrRangeInvalid
	}
	runes := []rune(b.lines[pos.Line])
	if pos.Col < 0 || pos.Col > len(runes) {
		return Position{}, ErrRangeInvalid
	}

	before := string(runes[:pos.Col])
	after := string(runes[pos.Col:])

	if !strings.Contains(text, "\n") {
		b.lines[pos.Line] = before + text + after
		b.cursor = Position{Line: pos.Line, Col: pos.Col + len([]rune(text))}
		return b.cursor, nil
	}

	parts := strings.Split(text, "\n")
	inserted := make([]string, len(parts))
	inserted[0] = before + parts[0]
	copy(inserted[1:], parts[1:])
	lastIdx := len(inserted) - 1
	endCol := len([]rune(inserted[lastIdx]))
	inserted[lastIdx] += after

	b.lines = append(b.lines[:pos.Line], append(inserted, b.lines[pos.Line+1:]...)...)
	b.cursor = Position{Line: pos.Line + lastIdx, Col: endCol}
	return b.cursor, nil
}

// DeleteRange removes the charwise span [start, end), which may cross lines,
// and returns the deleted text. The cursor lands on start, clamped. Reversed
// or out-of-range bounds are caller bugs and return ErrRangeInvalid.
func (b *Buffer) DeleteRange(start, end Position) (string, error) {
	if end.Before(start) {
		return "", ErrRangeInvalid
	}
	if !b.inEditRange(start) || !b.inEditRange(end) {
		return "", ErrRangeInvalid
	}

	if start.Line == end.Line {
		runes := []rune(b.lines[start.Line])
		deleted := string(runes[start.Col:end.Col])
		b.lines[start.Line] = string(runes[:start.Col]) + string(runes[end.Col:])
		b.cursor = b.Clamp(start)
		return deleted, nil
	}

	startRunes := []rune(b.lines[start.Line])
	endRunes := []rune(b.lines[end.Line])

	var sb strings.Builder
	sb.WriteString(string(startRunes[start.Col:]))
	for l := start.Line + 1; l < end.Line; l++ {
		sb.WriteString("\n")
		sb.WriteString(b.lines[l])
	}
	sb.WriteString("\n")
	sb.WriteString(string(endRunes[:end.Col]))

	merged := string(startRunes[:start.Col]) + string(endRunes[end.Col:])
	b.lines = append(b.lines[:start.Line], append([]string{merged}, b.lines[end.Line+1:]...)...)
	b.cursor = b.Clamp(start)
	return sb.String(), nil
}

// TextRange returns the charwise span [start, end) without modifying the
// buffer. Bounds follow the DeleteRange contract.
func (b *Buffer) TextRange(start, end Position) (string, error) {
	if end.Before(start) {
		return "", ErrRangeInvalid
	}
	if !b.inEditRange(start) || !b.inEditRange(end) {
		return "", ErrRangeInvalid
	}

	if start.Line == end.Line {
		runes := []rune(b.lines[start.Line])
		return string(runes[start.Col:end.Col]), nil
	}

	var sb strings.Builder
	sb.WriteString(string([]rune(b.lines[start.Line])[start.Col:]))
	for l := start.Line + 1; l < end.Line; l++ {
		sb.WriteString("\n")
		sb.WriteString(b.lines[l])
	}
	sb.WriteString("\n")
	sb.WriteString(string([]rune(b.lines[end.Line])[:end.Col]))
	return sb.String(), nil
}

// inEditRange reports whether pos is legal as an edit boundary: the column
// may always be one past the last character, regardless of cursor mode.
func (b *Buffer) inEditRange(pos Position) bool {
	if pos.Line < 0 || pos.Line >= len(b.lines) {
		return false
	}
	return pos.Col >= 0 && pos.Col <= len([]rune(b.lines[pos.Line]))
}

// DeleteLines removes up to n whole lines starting at line. Fewer are removed
// near the end of the buffer. The removed lines are returned. Deleting every
// line leaves a single empty line. The cursor stays on the same line index,
// clamped.
func (b *Buffer) DeleteLines(line, n int) []string {
	if line < 0 || line >= len(b.lines) || n <= 0 {
		return nil
	}
	if line+n > len(b.lines) {
		n = len(b.lines) - line
	}

	deleted := make([]string, n)
	copy(deleted, b.lines[line:line+n])

	b.lines = append(b.lines[:line], b.lines[line+n:]...)
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	b.cursor = b.Clamp(Position{Line: line, Col: b.cursor.Col})
	return deleted
}

// InsertLines splices whole lines so that the first inserted line becomes
// line at. The cursor is left clamped, unmoved otherwise.
func (b *Buffer) InsertLines(at int, lines []string) {
	if len(lines) == 0 {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > len(b.lines) {
		at = len(b.lines)
	}
	inserted := make([]string, len(lines))
	copy(inserted, lines)
	b.lines = append(b.lines[:at], append(inserted, b.lines[at:]...)...)
	b.cursor = b.Clamp(b.cursor)
}

// ReplaceLine swaps the content of one line. Out-of-range is a caller bug.
func (b *Buffer) ReplaceLine(n int, text string) error {
	if n < 0 || n >= len(b.lines) {
		return ErrLineOutOfRange
	}
	b.lines[n] = text
	b.cursor = b.Clamp(b.cursor)
	return nil
}

// JoinLines joins line n with the line below it, inserting a single space
// unless the lower line is empty, matching J. Reports whether a join
// happened; joining the last line is a boundary no-op.
func (b *Buffer) JoinLines(n int) bool {
	if n < 0 || n+1 >= len(b.lines) {
		return false
	}
	upper := strings.TrimRight(b.lines[n], " \t")
	lower := strings.TrimLeft(b.lines[n+1], " \t")

	joinCol := len([]rune(upper))
	switch {
	case lower == "":
		b.lines[n] = upper
	case upper == "":
		b.lines[n] = lower
		joinCol = 0
	default:
		b.lines[n] = upper + " " + lower
	}
	b.lines = append(b.lines[:n+1], b.lines[n+2:]...)
	b.cursor = b.Clamp(Position{Line: n, Col: joinCol})
	return true
}
