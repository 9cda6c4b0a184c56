package simulator

import (
	"strings"
	"unicode"

	"github.com/mglenn/vimulator/internal/engine/buffer"
	"github.com/mglenn/vimulator/internal/input/key"
	"github.com/mglenn/vimulator/internal/input/mode"
	"github.com/mglenn/vimulator/internal/input/vim"
	"github.com/mglenn/vimulator/internal/register"
	"github.com/mglenn/vimulator/internal/search"
)

// executeNormal runs one parsed command in Normal mode.
func (s *Simulator) executeNormal(cmd *vim.Command) {
	switch cmd.Kind {
	case vim.CommandMotion:
		s.applyMotion(cmd.Motion, cmd)
		s.discardChange()
	case vim.CommandOperatorMotion:
		s.execOperatorMotion(cmd)
	case vim.CommandOperatorObject:
		s.execOperatorObject(cmd)
	case vim.CommandOperatorLine:
		line := s.buf.Cursor().Line
		s.applyLinewise(cmd.Operator, line, line+cmd.EffectiveCount()-1, cmd.Register)
	case vim.CommandAction:
		s.execAction(cmd)
	default:
		s.fail("unrecognized command")
		s.discardChange()
	}
}

// applyMotion moves the cursor. Counted G and gg go to an absolute
// line; % ignores its count.
func (s *Simulator) applyMotion(m vim.MotionSpec, cmd *vim.Command) bool {
	if m.IsFind {
		return s.buf.FindChar(m.Find, m.Target, cmd.EffectiveCount())
	}
	switch m.Kind {
	case buffer.MotionFileEnd, buffer.MotionFileStart:
		if cmd.HasCount() {
			return s.buf.MoveToLine(cmd.Count - 1)
		}
		return s.buf.Move(m.Kind, 1)
	case buffer.MotionMatchPair:
		return s.buf.MatchPair()
	}
	return s.buf.Move(m.Kind, cmd.EffectiveCount())
}

// execOperatorMotion applies d/c/y over a motion range.
func (s *Simulator) execOperatorMotion(cmd *vim.Command) {
	cur := s.buf.Clamp(s.buf.Cursor())
	m := cmd.Motion
	count := cmd.EffectiveCount()

	// cw on a non-blank acts like ce, vim compatibility.
	if cmd.Operator == vim.OpChange && !m.IsFind && s.onNonBlank(cur) {
		switch m.Kind {
		case buffer.MotionWordForward:
			m.Kind = buffer.MotionWordEnd
			m.Inclusive = true
		case buffer.MotionWORDForward:
			m.Kind = buffer.MotionWORDEnd
			m.Inclusive = true
		}
	}

	var target buffer.Position
	if m.IsFind {
		var ok bool
		target, ok = s.buf.ResolveFind(m.Find, m.Target, count)
		if !ok {
			s.fail("character not found")
			s.discardChange()
			return
		}
	} else if (m.Kind == buffer.MotionFileEnd || m.Kind == buffer.MotionFileStart) && cmd.HasCount() {
		line := cmd.Count - 1
		if line >= s.buf.LineCount() {
			line = s.buf.LineCount() - 1
		}
		if line < 0 {
			line = 0
		}
		target = buffer.Position{Line: line}
	} else if m.Kind == buffer.MotionMatchPair {
		var ok bool
		target, ok = s.resolveMatchPair()
		if !ok {
			s.fail("no matching bracket")
			s.discardChange()
			return
		}
	} else if m.Kind == buffer.MotionWordForward || m.Kind == buffer.MotionWORDForward {
		var found bool
		target, found = s.buf.ResolveWordForward(cur, m.Kind == buffer.MotionWORDForward, count)
		if !found {
			// The buffer ended before the next word start; take the
			// rest of the line instead.
			target = buffer.Position{Line: target.Line, Col: s.buf.LineLen(target.Line)}
		}
	} else {
		target = s.buf.Resolve(m.Kind, count)
	}

	if m.Linewise {
		// j / k pinned at a buffer boundary resolve to the cursor line;
		// the command is discarded rather than acting on one line.
		if (m.Kind == buffer.MotionDown || m.Kind == buffer.MotionUp) && target.Line == cur.Line {
			s.discardChange()
			return
		}
		low, high := cur.Line, target.Line
		if low > high {
			low, high = high, low
		}
		s.applyLinewise(cmd.Operator, low, high, cmd.Register)
		return
	}

	low, high := buffer.Order(cur, target)

	// A forward word motion under an operator stops at the end of the
	// starting line rather than crossing into the next.
	if (m.Kind == buffer.MotionWordForward || m.Kind == buffer.MotionWORDForward) &&
		low.Equals(cur) && high.Line > low.Line {
		high = buffer.Position{Line: low.Line, Col: s.buf.LineLen(low.Line)}
	}

	if m.Inclusive {
		high.Col++
	}
	if n := s.buf.LineLen(high.Line); high.Col > n {
		high.Col = n
	}

	if low.Equals(high) {
		s.discardChange()
		return
	}
	s.applyCharwise(cmd.Operator, low, high, cmd.Register)
}

// resolveMatchPair finds the % target without moving the cursor.
func (s *Simulator) resolveMatchPair() (buffer.Position, bool) {
	saved := s.buf.Cursor()
	if !s.buf.MatchPair() {
		return saved, false
	}
	target := s.buf.Cursor()
	s.buf.SetCursor(saved)
	return target, true
}

// execOperatorObject applies d/c/y over a text object.
func (s *Simulator) execOperatorObject(cmd *vim.Command) {
	cur := s.buf.Cursor()
	obj := cmd.Object

	if obj.Kind == vim.ObjectParagraph {
		startLine, endLine := s.buf.ParagraphRange(cur, obj.Around)
		s.applyLinewise(cmd.Operator, startLine, endLine, cmd.Register)
		return
	}

	start, end, ok := s.resolveObject(obj, cur)
	if !ok {
		s.fail("no surrounding text object")
		s.discardChange()
		return
	}
	end.Col++
	if n := s.buf.LineLen(end.Line); end.Col > n {
		end.Col = n
	}
	if start.Equals(end) {
		s.discardChange()
		return
	}
	s.applyCharwise(cmd.Operator, start, end, cmd.Register)
}

// resolveObject returns the inclusive span of a charwise text object.
func (s *Simulator) resolveObject(obj vim.ObjectSpec, pos buffer.Position) (buffer.Position, buffer.Position, bool) {
	switch obj.Kind {
	case vim.ObjectWord:
		return s.buf.WordRange(pos, false, obj.Around)
	case vim.ObjectWORD:
		return s.buf.WordRange(pos, true, obj.Around)
	case vim.ObjectQuote:
		return s.buf.QuoteRange(pos, obj.Quote, obj.Around)
	case vim.ObjectPair:
		return s.buf.PairRange(pos, obj.Open, obj.Close, obj.Around)
	}
	return pos, pos, false
}

// applyCharwise runs an operator over the exclusive range [low, high).
func (s *Simulator) applyCharwise(op vim.OperatorKind, low, high buffer.Position, reg rune) {
	if op == vim.OpYank {
		text, err := s.buf.TextRange(low, high)
		if err != nil {
			s.fail("invalid range")
			s.discardChange()
			return
		}
		s.regs.RecordYank(regOr(reg), register.Content{Text: text})
		s.buf.SetCursor(low)
		s.discardChange()
		return
	}

	s.pushUndo()
	text, err := s.buf.DeleteRange(low, high)
	if err != nil {
		s.fail("invalid range")
		s.discardChange()
		return
	}
	s.regs.RecordDelete(regOr(reg), register.Content{Text: text})

	if op == vim.OpChange {
		s.buf.AllowPastEOL(true)
		s.buf.SetCursor(low)
		s.enterInsert(true)
		return
	}
	s.finishChange()
}

// applyLinewise runs an operator over whole lines [startLine, endLine].
func (s *Simulator) applyLinewise(op vim.OperatorKind, startLine, endLine int, reg rune) {
	last := s.buf.LineCount() - 1
	if startLine < 0 {
		startLine = 0
	}
	if endLine > last {
		endLine = last
	}
	if startLine > endLine {
		s.discardChange()
		return
	}

	lines := s.buf.Lines()[startLine : endLine+1]
	text := strings.Join(lines, "\n")
	content := register.Content{Text: text, Linewise: true}

	switch op {
	case vim.OpYank:
		s.regs.RecordYank(regOr(reg), content)
		s.buf.SetCursor(buffer.Position{Line: startLine, Col: s.buf.Cursor().Col})
		s.discardChange()

	case vim.OpDelete:
		s.pushUndo()
		s.buf.DeleteLines(startLine, endLine-startLine+1)
		s.regs.RecordDelete(regOr(reg), content)
		line := startLine
		if line >= s.buf.LineCount() {
			line = s.buf.LineCount() - 1
		}
		s.buf.MoveToLine(line)
		s.finishChange()

	case vim.OpChange:
		s.pushUndo()
		s.buf.DeleteLines(startLine, endLine-startLine+1)
		s.regs.RecordDelete(regOr(reg), content)
		if !(s.buf.LineCount() == 1 && s.buf.Line(0) == "") {
			s.buf.InsertLines(startLine, []string{""})
		}
		s.buf.AllowPastEOL(true)
		s.buf.SetCursor(buffer.Position{Line: startLine, Col: 0})
		s.enterInsert(true)
	}
}

// execAction runs one immediate command.
func (s *Simulator) execAction(cmd *vim.Command) {
	count := cmd.EffectiveCount()
	// The cursor may rest one past the line end right after an insert
	// session; actions operate on the clamped position.
	cur := s.buf.Clamp(s.buf.Cursor())

	switch cmd.Action {
	case vim.ActionDeleteChar:
		s.deleteChars(cur, count, cmd.Register, false)

	case vim.ActionDeleteCharBack:
		low := cur.Col - count
		if low < 0 {
			low = 0
		}
		if low == cur.Col {
			s.discardChange()
			return
		}
		s.pushUndo()
		text, _ := s.buf.DeleteRange(buffer.Position{Line: cur.Line, Col: low}, cur)
		s.regs.RecordDelete(regOr(cmd.Register), register.Content{Text: text})
		s.finishChange()

	case vim.ActionDeleteToEnd:
		s.deleteToEnd(cur, cmd.Register, false)

	case vim.ActionChangeToEnd:
		s.deleteToEnd(cur, cmd.Register, true)

	case vim.ActionYankLine:
		s.applyLinewise(vim.OpYank, cur.Line, cur.Line+count-1, cmd.Register)

	case vim.ActionSubstChar:
		s.deleteChars(cur, count, cmd.Register, true)

	case vim.ActionSubstLine:
		s.applyLinewise(vim.OpChange, cur.Line, cur.Line+count-1, cmd.Register)

	case vim.ActionReplaceChar:
		s.replaceChars(cur, count, cmd.Arg)

	case vim.ActionPutAfter:
		s.paste(true, count, cmd.Register)

	case vim.ActionPutBefore:
		s.paste(false, count, cmd.Register)

	case vim.ActionJoin:
		s.joinLines(cur, count)

	case vim.ActionUndo:
		undone := 0
		for i := 0; i < count && s.history.Undo(s.buf); i++ {
			undone++
		}
		if undone == 0 {
			s.note("Already at oldest change")
		}
		s.discardChange()

	case vim.ActionRedo:
		redone := 0
		for i := 0; i < count && s.history.Redo(s.buf); i++ {
			redone++
		}
		if redone == 0 {
			s.note("Already at newest change")
		}
		s.discardChange()

	case vim.ActionToggleCase:
		s.toggleCase(cur, count)

	case vim.ActionRepeat:
		s.repeatLastChange(count)

	case vim.ActionRecordMacro:
		if err := s.recorder.Start(cmd.Arg); err != nil {
			s.fail("%v", err)
		} else {
			s.note("recording @%c", cmd.Arg)
		}
		s.discardChange()

	case vim.ActionPlayMacro:
		s.playMacro(cmd.Arg, count)

	case vim.ActionVisualChar:
		s.modes.EnterVisual(mode.VisualChar, cur)
	case vim.ActionVisualLine:
		s.modes.EnterVisual(mode.VisualLine, cur)
	case vim.ActionVisualBlock:
		s.modes.EnterVisual(mode.VisualBlock, cur)

	case vim.ActionCommandLine:
		s.openCommandLine(':')
	case vim.ActionSearchForward:
		s.openCommandLine('/')
	case vim.ActionSearchBackward:
		s.openCommandLine('?')

	case vim.ActionSearchNext:
		s.searchStep(count, false)
	case vim.ActionSearchPrev:
		s.searchStep(count, true)

	case vim.ActionSearchWord:
		s.searchWordUnderCursor(search.Forward)
	case vim.ActionSearchWordBack:
		s.searchWordUnderCursor(search.Backward)

	case vim.ActionInsert:
		s.enterInsert(false)
	case vim.ActionInsertLineStart:
		s.buf.Move(buffer.MotionFirstNonBlank, 1)
		s.enterInsert(false)
	case vim.ActionAppend:
		s.buf.AllowPastEOL(true)
		s.buf.SetCursor(buffer.Position{Line: cur.Line, Col: cur.Col + 1})
		s.enterInsert(false)
	case vim.ActionAppendLineEnd:
		s.buf.AllowPastEOL(true)
		s.buf.SetCursor(buffer.Position{Line: cur.Line, Col: s.buf.LineLen(cur.Line)})
		s.enterInsert(false)
	case vim.ActionOpenBelow:
		s.pushUndo()
		s.buf.InsertLines(cur.Line+1, []string{""})
		s.buf.AllowPastEOL(true)
		s.buf.SetCursor(buffer.Position{Line: cur.Line + 1, Col: 0})
		s.enterInsert(true)
	case vim.ActionOpenAbove:
		s.pushUndo()
		s.buf.InsertLines(cur.Line, []string{""})
		s.buf.AllowPastEOL(true)
		s.buf.SetCursor(buffer.Position{Line: cur.Line, Col: 0})
		s.enterInsert(true)

	default:
		s.fail("unrecognized command")
		s.discardChange()
	}
}

// deleteChars implements x and s: count characters from the cursor.
func (s *Simulator) deleteChars(cur buffer.Position, count int, reg rune, thenInsert bool) {
	n := s.buf.LineLen(cur.Line)
	high := cur.Col + count
	if high > n {
		high = n
	}
	if high == cur.Col {
		if thenInsert {
			s.enterInsert(false)
			return
		}
		s.discardChange()
		return
	}
	s.pushUndo()
	text, _ := s.buf.DeleteRange(cur, buffer.Position{Line: cur.Line, Col: high})
	s.regs.RecordDelete(regOr(reg), register.Content{Text: text})
	if thenInsert {
		s.buf.AllowPastEOL(true)
		s.buf.SetCursor(cur)
		s.enterInsert(true)
		return
	}
	s.finishChange()
}

// deleteToEnd implements D and C.
func (s *Simulator) deleteToEnd(cur buffer.Position, reg rune, thenInsert bool) {
	n := s.buf.LineLen(cur.Line)
	if cur.Col >= n {
		if thenInsert {
			s.buf.AllowPastEOL(true)
			s.enterInsert(false)
			return
		}
		s.discardChange()
		return
	}
	s.pushUndo()
	text, _ := s.buf.DeleteRange(cur, buffer.Position{Line: cur.Line, Col: n})
	s.regs.RecordDelete(regOr(reg), register.Content{Text: text})
	if thenInsert {
		s.buf.AllowPastEOL(true)
		s.buf.SetCursor(cur)
		s.enterInsert(true)
		return
	}
	s.finishChange()
}

// replaceChars implements r: the whole count must fit on the line or
// nothing happens.
func (s *Simulator) replaceChars(cur buffer.Position, count int, ch rune) {
	runes := []rune(s.buf.Line(cur.Line))
	if cur.Col+count > len(runes) {
		s.fail("not enough characters to replace")
		s.discardChange()
		return
	}
	s.pushUndo()
	for i := 0; i < count; i++ {
		runes[cur.Col+i] = ch
	}
	s.buf.ReplaceLine(cur.Line, string(runes))
	s.buf.SetCursor(buffer.Position{Line: cur.Line, Col: cur.Col + count - 1})
	s.finishChange()
}

// joinLines implements J: count lines collapse into one, minimum two.
func (s *Simulator) joinLines(cur buffer.Position, count int) {
	joins := count - 1
	if joins < 1 {
		joins = 1
	}
	if cur.Line >= s.buf.LineCount()-1 {
		s.fail("cannot join past last line")
		s.discardChange()
		return
	}
	s.pushUndo()
	for i := 0; i < joins; i++ {
		if !s.buf.JoinLines(cur.Line) {
			break
		}
	}
	s.finishChange()
}

// toggleCase implements ~: flip case and advance.
func (s *Simulator) toggleCase(cur buffer.Position, count int) {
	runes := []rune(s.buf.Line(cur.Line))
	if len(runes) == 0 {
		s.discardChange()
		return
	}
	end := cur.Col + count
	if end > len(runes) {
		end = len(runes)
	}
	s.pushUndo()
	for i := cur.Col; i < end; i++ {
		switch r := runes[i]; {
		case unicode.IsUpper(r):
			runes[i] = unicode.ToLower(r)
		case unicode.IsLower(r):
			runes[i] = unicode.ToUpper(r)
		}
	}
	s.buf.ReplaceLine(cur.Line, string(runes))
	s.buf.SetCursor(buffer.Position{Line: cur.Line, Col: end})
	s.finishChange()
}

// paste implements p and P.
func (s *Simulator) paste(after bool, count int, reg rune) {
	content, err := s.regs.Get(regOr(reg))
	if err != nil {
		s.fail("%v", err)
		s.discardChange()
		return
	}
	if content.IsEmpty() {
		s.fail("nothing in register %c", regOr(reg))
		s.discardChange()
		return
	}

	cur := s.buf.Cursor()
	s.pushUndo()

	if content.Linewise {
		src := strings.Split(content.Text, "\n")
		lines := make([]string, 0, len(src)*count)
		for i := 0; i < count; i++ {
			lines = append(lines, src...)
		}
		at := cur.Line
		if after {
			at++
		}
		s.buf.InsertLines(at, lines)
		s.buf.MoveToLine(at)
		s.finishChange()
		return
	}

	text := strings.Repeat(content.Text, count)
	pos := s.buf.Clamp(cur)
	if after && s.buf.LineLen(pos.Line) > 0 {
		pos.Col++
	}
	end, err := s.buf.InsertAt(pos, text)
	if err != nil {
		s.fail("invalid paste position")
		s.discardChange()
		return
	}
	if end.Col > 0 {
		end.Col--
	}
	s.buf.SetCursor(end)
	s.finishChange()
}

// playMacro replays a macro register through the normal input path.
func (s *Simulator) playMacro(reg rune, count int) {
	s.discardChange()
	err := s.player.Play(reg, count, func(ev key.Event) bool {
		out := s.ProcessInput(ev)
		return !out.Failed
	})
	if err != nil {
		s.fail("%v", err)
	}
}

// searchStep implements n and N.
func (s *Simulator) searchStep(count int, reverse bool) {
	s.discardChange()
	pos := s.buf.Cursor()
	for i := 0; i < count; i++ {
		var next buffer.Position
		var err error
		if reverse {
			next, err = s.searches.FindReverse(s.buf, pos)
		} else {
			next, err = s.searches.Find(s.buf, pos)
		}
		if err == search.ErrNoPattern {
			s.fail("no previous search pattern")
			return
		}
		if err != nil {
			s.fail("Pattern not found: %s", s.searches.Pattern())
			return
		}
		pos = next
	}
	s.buf.SetCursor(pos)
}

// searchWordUnderCursor implements * and #.
func (s *Simulator) searchWordUnderCursor(dir search.Direction) {
	s.discardChange()
	cur := s.buf.Cursor()
	start, end, ok := s.buf.WordRange(cur, false, false)
	if !ok {
		s.fail("no word under cursor")
		return
	}
	word, err := s.buf.TextRange(start, buffer.Position{Line: end.Line, Col: end.Col + 1})
	if err != nil || strings.TrimSpace(word) == "" {
		s.fail("no word under cursor")
		return
	}

	pattern := search.WordPattern(word)
	if err := s.searches.SetPattern(pattern, dir); err != nil {
		s.fail("%v", err)
		return
	}
	next, err := s.searches.Find(s.buf, cur)
	if err != nil {
		s.fail("Pattern not found: %s", pattern)
		return
	}
	s.buf.SetCursor(next)
	s.note("%s", pattern)
}

// onNonBlank reports whether the cursor sits on a non-whitespace rune.
func (s *Simulator) onNonBlank(pos buffer.Position) bool {
	r := s.buf.RuneAt(pos)
	return r != 0 && !unicode.IsSpace(r)
}

// regOr defaults an unset register to the unnamed one.
func regOr(r rune) rune {
	if r == 0 {
		return register.Unnamed
	}
	return r
}
