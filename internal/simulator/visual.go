package simulator

import (
	"strings"
	"unicode"

	"github.com/mglenn/vimulator/internal/engine/buffer"
	"github.com/mglenn/vimulator/internal/input/mode"
	"github.com/mglenn/vimulator/internal/input/vim"
	"github.com/mglenn/vimulator/internal/register"
)

// executeVisual runs one parsed command while a selection is active.
func (s *Simulator) executeVisual(cmd *vim.Command) {
	switch cmd.Kind {
	case vim.CommandMotion:
		s.applyMotion(cmd.Motion, cmd)

	case vim.CommandObject:
		s.selectObject(cmd.Object)

	case vim.CommandVisualOperator:
		s.visualOperate(cmd.Operator, cmd.Register)

	case vim.CommandAction:
		s.execVisualAction(cmd)

	default:
		s.fail("unrecognized command")
		s.discardChange()
	}
}

// execVisualAction reinterprets immediate commands for visual mode.
func (s *Simulator) execVisualAction(cmd *vim.Command) {
	switch cmd.Action {
	case vim.ActionDeleteChar, vim.ActionDeleteToEnd:
		s.visualOperate(vim.OpDelete, cmd.Register)

	case vim.ActionSubstChar, vim.ActionChangeToEnd:
		s.visualOperate(vim.OpChange, cmd.Register)

	case vim.ActionYankLine:
		anchor, cur := s.modes.Anchor(), s.buf.Cursor()
		low, high := anchor.Line, cur.Line
		if low > high {
			low, high = high, low
		}
		s.modes.Switch(mode.Normal)
		s.applyLinewise(vim.OpYank, low, high, cmd.Register)

	case vim.ActionToggleCase:
		s.visualToggleCase()

	case vim.ActionOpenBelow:
		// o swaps the cursor and the anchor.
		anchor := s.modes.Anchor()
		s.modes.SetAnchor(s.buf.Cursor())
		s.buf.SetCursor(anchor)

	case vim.ActionVisualChar:
		s.toggleVisualKind(mode.VisualChar)
	case vim.ActionVisualLine:
		s.toggleVisualKind(mode.VisualLine)
	case vim.ActionVisualBlock:
		s.toggleVisualKind(mode.VisualBlock)

	default:
		s.fail("unrecognized command")
		s.discardChange()
	}
}

// toggleVisualKind switches variants; re-pressing the active one exits.
func (s *Simulator) toggleVisualKind(kind mode.Kind) {
	if s.modes.Current() == kind {
		s.modes.Switch(mode.Normal)
		s.discardChange()
		return
	}
	s.modes.EnterVisual(kind, s.modes.Anchor())
}

// selectObject retargets the selection to a text object around the
// cursor.
func (s *Simulator) selectObject(obj vim.ObjectSpec) {
	cur := s.buf.Cursor()

	if obj.Kind == vim.ObjectParagraph {
		startLine, endLine := s.buf.ParagraphRange(cur, obj.Around)
		s.modes.EnterVisual(mode.VisualLine, s.modes.Anchor())
		s.modes.SetAnchor(buffer.Position{Line: startLine, Col: 0})
		s.buf.MoveToLine(endLine)
		return
	}

	start, end, ok := s.resolveObject(obj, cur)
	if !ok {
		s.fail("no surrounding text object")
		return
	}
	s.modes.SetAnchor(start)
	s.buf.SetCursor(end)
}

// selectionSpan returns the normalized exclusive charwise range of the
// current selection.
func (s *Simulator) selectionSpan() (buffer.Position, buffer.Position) {
	low, high := buffer.Order(s.modes.Anchor(), s.buf.Cursor())
	high.Col++
	if n := s.buf.LineLen(high.Line); high.Col > n {
		high.Col = n
	}
	return low, high
}

// visualOperate applies d/c/y to the selection and leaves visual mode.
func (s *Simulator) visualOperate(op vim.OperatorKind, reg rune) {
	kind := s.modes.Current()
	anchor, cur := s.modes.Anchor(), s.buf.Cursor()

	switch kind {
	case mode.VisualLine:
		low, high := anchor.Line, cur.Line
		if low > high {
			low, high = high, low
		}
		s.modes.Switch(mode.Normal)
		s.applyLinewise(op, low, high, reg)

	case mode.VisualBlock:
		s.modes.Switch(mode.Normal)
		s.blockOperate(op, anchor, cur, reg)

	default:
		low, high := s.selectionSpan()
		s.modes.Switch(mode.Normal)
		if low.Equals(high) {
			s.discardChange()
			return
		}
		s.applyCharwise(op, low, high, reg)
	}
}

// blockOperate applies an operator to the rectangle between anchor and
// cursor, clamped per line.
func (s *Simulator) blockOperate(op vim.OperatorKind, anchor, cur buffer.Position, reg rune) {
	topLine, botLine := anchor.Line, cur.Line
	if topLine > botLine {
		topLine, botLine = botLine, topLine
	}
	leftCol, rightCol := anchor.Col, cur.Col
	if leftCol > rightCol {
		leftCol, rightCol = rightCol, leftCol
	}
	rightCol++ // exclusive

	segments := make([]string, 0, botLine-topLine+1)
	for line := topLine; line <= botLine; line++ {
		n := s.buf.LineLen(line)
		lo, hi := leftCol, rightCol
		if lo > n {
			lo = n
		}
		if hi > n {
			hi = n
		}
		seg, _ := s.buf.TextRange(
			buffer.Position{Line: line, Col: lo},
			buffer.Position{Line: line, Col: hi},
		)
		segments = append(segments, seg)
	}
	content := register.Content{Text: strings.Join(segments, "\n")}

	if op == vim.OpYank {
		s.regs.RecordYank(regOr(reg), content)
		s.buf.SetCursor(buffer.Position{Line: topLine, Col: leftCol})
		s.discardChange()
		return
	}

	s.pushUndo()
	for line := topLine; line <= botLine; line++ {
		n := s.buf.LineLen(line)
		lo, hi := leftCol, rightCol
		if lo > n {
			lo = n
		}
		if hi > n {
			hi = n
		}
		if lo < hi {
			s.buf.DeleteRange(
				buffer.Position{Line: line, Col: lo},
				buffer.Position{Line: line, Col: hi},
			)
		}
	}
	s.regs.RecordDelete(regOr(reg), content)
	s.buf.SetCursor(buffer.Position{Line: topLine, Col: leftCol})

	if op == vim.OpChange {
		s.buf.AllowPastEOL(true)
		s.enterInsert(true)
		return
	}
	s.finishChange()
}

// visualToggleCase flips the case of every selected character.
func (s *Simulator) visualToggleCase() {
	low, high := s.selectionSpan()
	s.modes.Switch(mode.Normal)
	if low.Equals(high) {
		s.discardChange()
		return
	}
	s.pushUndo()
	for line := low.Line; line <= high.Line; line++ {
		runes := []rune(s.buf.Line(line))
		from, to := 0, len(runes)
		if line == low.Line {
			from = low.Col
		}
		if line == high.Line {
			to = high.Col
		}
		for i := from; i < to && i < len(runes); i++ {
			switch r := runes[i]; {
			case unicode.IsUpper(r):
				runes[i] = unicode.ToLower(r)
			case unicode.IsLower(r):
				runes[i] = unicode.ToUpper(r)
			}
		}
		s.buf.ReplaceLine(line, string(runes))
	}
	s.buf.SetCursor(low)
	s.finishChange()
}
