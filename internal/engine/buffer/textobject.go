package buffer

// QuoteRange returns the inclusive span of a quoted string on the cursor
// line, delimited by quote. inner excludes the quotes themselves. The cursor
// may sit inside the quotes, on a quote, or before the opening quote on the
// same line (vim looks ahead). ok is false when no quoted span exists.
func (b *Buffer) QuoteRange(pos Position, quote rune, around bool) (Position, Position, bool) {
	runes := []rune(b.Line(pos.Line))

	// Collect quote columns on the line; they pair up left to right.
	var cols []int
	for i, r := range runes {
		if r == quote {
			cols = append(cols, i)
		}
	}
	if len(cols) < 2 {
		return pos, pos, false
	}

	for i := 0; i+1 < len(cols); i += 2 {
		open, close := cols[i], cols[i+1]
		if pos.Col <= close {
			if around {
				return Position{Line: pos.Line, Col: open},
					Position{Line: pos.Line, Col: close}, true
			}
			if open+1 > close-1 {
				// Empty string: inner selects nothing usable; collapse onto
				// the opening quote so operators become a no-op delete.
				return Position{Line: pos.Line, Col: open + 1},
					Position{Line: pos.Line, Col: open}, true
			}
			return Position{Line: pos.Line, Col: open + 1},
				Position{Line: pos.Line, Col: close - 1}, true
		}
	}
	return pos, pos, false
}

// PairRange returns the inclusive span delimited by a bracket pair
// containing pos. inner excludes the brackets. Nesting is respected. ok is
// false when pos is not inside such a pair.
func (b *Buffer) PairRange(pos Position, open, close rune, around bool) (Position, Position, bool) {
	// When the cursor sits on a bracket, anchor the scan there.
	var openPos Position
	var ok bool
	switch b.RuneAt(pos) {
	case open:
		openPos = pos
		ok = true
	default:
		openPos, ok = b.scanBackUnbalanced(pos, open, close)
	}
	if !ok {
		return pos, pos, false
	}

	closePos, found := b.scanForward(openPos, open, close)
	if !found || pos.Line > closePos.Line ||
		(pos.Line == closePos.Line && pos.Col > closePos.Col) {
		return pos, pos, false
	}

	if around {
		return openPos, closePos, true
	}

	start, sok := b.nextPos(openPos)
	end, eok := b.prevPos(closePos)
	if !sok || !eok || closePos.Before(start) {
		// Empty pair: collapse like QuoteRange does.
		return Position{Line: openPos.Line, Col: openPos.Col + 1}, openPos, true
	}
	return start, end, true
}

// scanBackUnbalanced finds the nearest unmatched opener before pos.
func (b *Buffer) scanBackUnbalanced(pos Position, open, close rune) (Position, bool) {
	depth := 0
	p := pos
	for {
		n, ok := b.prevPos(p)
		if !ok {
			return pos, false
		}
		p = n
		switch b.RuneAt(p) {
		case close:
			depth++
		case open:
			if depth == 0 {
				return p, true
			}
			depth--
		}
	}
}

// ParagraphRange returns the inclusive line span of the paragraph containing
// pos. Blank lines separate paragraphs; a blank-line run is itself a
// paragraph. around extends over the trailing blank run (or leading, at end
// of buffer).
func (b *Buffer) ParagraphRange(pos Position, around bool) (int, int) {
	blank := isBlankLine(b.lines[pos.Line])
	start, end := pos.Line, pos.Line

	for start > 0 && isBlankLine(b.lines[start-1]) == blank {
		start--
	}
	for end+1 < len(b.lines) && isBlankLine(b.lines[end+1]) == blank {
		end++
	}

	if around {
		grown := false
		for end+1 < len(b.lines) && isBlankLine(b.lines[end+1]) != blank {
			end++
			grown = true
		}
		if !grown {
			for start > 0 && isBlankLine(b.lines[start-1]) != blank {
				start--
			}
		}
	}
	return start, end
}
