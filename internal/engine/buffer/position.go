package buffer

// Position is a 0-indexed (line, column) location in the buffer.
// Columns count runes, not bytes.
type Position struct {
	Line int
	Col  int
}

// Before returns true if p is strictly before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Equals returns true if both positions are identical.
func (p Position) Equals(other Position) bool {
	return p.Line == other.Line && p.Col == other.Col
}

// Order returns the two positions in document order (low, high).
func Order(a, b Position) (Position, Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}
