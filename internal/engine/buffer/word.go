package buffer

import "unicode"

// charClass buckets a rune for "word" motions: 0 whitespace, 1 word
// characters (letters, digits, underscore), 2 everything else. "WORD"
// motions collapse classes 1 and 2, leaving whitespace as the only boundary.
// Text objects reuse the same classifiers so iw and w agree on boundaries.
func charClass(r rune, big bool) int {
	switch {
	case r == 0 || unicode.IsSpace(r):
		return 0
	case big:
		return 1
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return 1
	default:
		return 2
	}
}

// classAt returns the class of the rune under pos. Positions at or past the
// end of a line classify as whitespace, which makes empty lines uniform.
func (b *Buffer) classAt(pos Position, big bool) int {
	return charClass(b.RuneAt(pos), big)
}

// nextPos advances one character, crossing line ends. Reports false at the
// end of the buffer.
func (b *Buffer) nextPos(p Position) (Position, bool) {
	if p.Col < b.LineLen(p.Line)-1 {
		return Position{Line: p.Line, Col: p.Col + 1}, true
	}
	if p.Line+1 < len(b.lines) {
		return Position{Line: p.Line + 1, Col: 0}, true
	}
	return p, false
}

// prevPos retreats one character, crossing line starts. Reports false at the
// start of the buffer.
func (b *Buffer) prevPos(p Position) (Position, bool) {
	if p.Col > 0 {
		return Position{Line: p.Line, Col: p.Col - 1}, true
	}
	if p.Line > 0 {
		col := b.LineLen(p.Line-1) - 1
		if col < 0 {
			col = 0
		}
		return Position{Line: p.Line - 1, Col: col}, true
	}
	return p, false
}

// wordForward implements w / W: the start of the next word. An empty line
// counts as a word.
func (b *Buffer) wordForward(pos Position, big bool) Position {
	p, _ := b.wordForwardStep(pos, big)
	return p
}

// ResolveWordForward resolves a counted w / W motion. found reports whether
// the final step reached a word start; operators extend a motion clamped by
// the end of the buffer to the end of its line instead.
func (b *Buffer) ResolveWordForward(pos Position, big bool, count int) (Position, bool) {
	found := true
	for i := 0; i < count && found; i++ {
		pos, found = b.wordForwardStep(pos, big)
	}
	return pos, found
}

// wordForwardStep resolves a single w / W step. A punctuation run followed by
// a word character starts a word; a punctuation run followed by whitespace is
// a trailing delimiter and is skipped.
func (b *Buffer) wordForwardStep(pos Position, big bool) (Position, bool) {
	p := pos
	cls := b.classAt(p, big)

	// Step off the current word run.
	if cls != 0 {
		for {
			n, ok := b.nextPos(p)
			if !ok {
				return p, false
			}
			p = n
			if n.Line != pos.Line || b.classAt(n, big) != cls {
				break
			}
		}
	} else {
		n, ok := b.nextPos(p)
		if !ok {
			return p, false
		}
		p = n
	}

	// Skip to the next word start; stop on empty lines.
	for {
		if b.LineLen(p.Line) == 0 {
			return p, true
		}
		switch b.classAt(p, big) {
		case 1:
			return p, true
		case 2:
			q := p
			for {
				n, ok := b.nextPos(q)
				if !ok {
					return p, false
				}
				if n.Line != q.Line {
					p = n
					break
				}
				c := b.classAt(n, big)
				if c == 2 {
					q = n
					continue
				}
				if c == 1 {
					return p, true
				}
				p = n
				break
			}
		default:
			n, ok := b.nextPos(p)
			if !ok {
				return p, false
			}
			p = n
		}
	}
}

// wordBack implements b / B: the start of the previous word.
func (b *Buffer) wordBack(pos Position, big bool) Position {
	p, ok := b.prevPos(pos)
	if !ok {
		return pos
	}

	// Skip whitespace backwards; an empty line is a word.
	for {
		if b.LineLen(p.Line) == 0 {
			return p
		}
		if b.classAt(p, big) != 0 {
			break
		}
		n, ok := b.prevPos(p)
		if !ok {
			return p
		}
		p = n
	}

	// Walk to the first character of this word run.
	cls := b.classAt(p, big)
	for {
		n, ok := b.prevPos(p)
		if !ok || n.Line != p.Line || b.classAt(n, big) != cls {
			return p
		}
		p = n
	}
}

// wordEnd implements e / E: the last character of the current or next word.
func (b *Buffer) wordEnd(pos Position, big bool) Position {
	p, ok := b.nextPos(pos)
	if !ok {
		return pos
	}

	// Skip whitespace (empty lines included, e does not stop on them).
	for b.classAt(p, big) == 0 {
		n, ok := b.nextPos(p)
		if !ok {
			return p
		}
		p = n
	}

	// Walk to the last character of this word run.
	cls := b.classAt(p, big)
	for {
		n, ok := b.nextPos(p)
		if !ok || n.Line != p.Line || b.classAt(n, big) != cls {
			return p
		}
		p = n
	}
}

// WordRange returns the [start, end] inclusive span of the word under pos,
// using the same classifiers as the word motions. around additionally takes
// trailing whitespace (or, failing that, leading whitespace). ok is false on
// whitespace when inner is requested with no word under the cursor.
func (b *Buffer) WordRange(pos Position, big, around bool) (Position, Position, bool) {
	runes := []rune(b.Line(pos.Line))
	if len(runes) == 0 {
		return pos, pos, false
	}
	col := pos.Col
	if col >= len(runes) {
		col = len(runes) - 1
	}

	cls := charClass(runes[col], big)
	start, end := col, col
	for start > 0 && charClass(runes[start-1], big) == cls {
		start--
	}
	for end+1 < len(runes) && charClass(runes[end+1], big) == cls {
		end++
	}

	if around && cls != 0 {
		grown := false
		for end+1 < len(runes) && charClass(runes[end+1], big) == 0 {
			end++
			grown = true
		}
		if !grown {
			for start > 0 && charClass(runes[start-1], big) == 0 {
				start--
			}
		}
	}

	return Position{Line: pos.Line, Col: start}, Position{Line: pos.Line, Col: end}, true
}
