package simulator

import (
	"github.com/mglenn/vimulator/internal/engine/buffer"
	"github.com/mglenn/vimulator/internal/input/key"
)

// processInsert handles one key in Insert mode.
func (s *Simulator) processInsert(event key.Event) {
	switch {
	case event.IsEscape():
		s.leaveInsert()

	case event.IsEnter():
		s.ensureInsertSnapshot()
		s.buf.InsertAt(s.buf.Cursor(), "\n")

	case event.IsBackspace():
		s.insertBackspace()

	case event.Key == key.KeyTab:
		s.ensureInsertSnapshot()
		s.buf.InsertAt(s.buf.Cursor(), "\t")

	case event.IsPlainRune():
		s.ensureInsertSnapshot()
		s.buf.InsertAt(s.buf.Cursor(), string(event.Rune))
	}
	// Anything else (arrows, control chords) is ignored in insert mode.
}

// ensureInsertSnapshot takes the session's undo snapshot before the
// first edit of an insert session that entered without one.
func (s *Simulator) ensureInsertSnapshot() {
	if !s.insertSnapshot {
		s.pushUndo()
		s.insertSnapshot = true
	}
}

// insertBackspace deletes the character before the cursor, joining with
// the previous line at column zero.
func (s *Simulator) insertBackspace() {
	cur := s.buf.Cursor()
	if cur.Col > 0 {
		s.ensureInsertSnapshot()
		s.buf.DeleteRange(
			buffer.Position{Line: cur.Line, Col: cur.Col - 1},
			cur,
		)
		return
	}
	if cur.Line == 0 {
		return
	}
	s.ensureInsertSnapshot()
	upper := s.buf.Line(cur.Line - 1)
	s.buf.ReplaceLine(cur.Line-1, upper+s.buf.Line(cur.Line))
	s.buf.DeleteLines(cur.Line, 1)
	s.buf.SetCursor(buffer.Position{Line: cur.Line - 1, Col: len([]rune(upper))})
}
