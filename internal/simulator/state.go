package simulator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/mglenn/vimulator/internal/engine/buffer"
	"github.com/mglenn/vimulator/internal/input/key"
	"github.com/mglenn/vimulator/internal/input/macro"
	"github.com/mglenn/vimulator/internal/input/mode"
	"github.com/mglenn/vimulator/internal/register"
	"github.com/mglenn/vimulator/internal/search"
)

// stateVersion tags the serialized layout.
const stateVersion = 1

// ErrBadState reports structurally invalid serialized input.
var ErrBadState = errors.New("malformed session state")

// Serialize captures the session as JSON: buffer, cursor, registers,
// macros, and search state. Undo history and pending input are
// transient and intentionally not serialized; a restored session starts
// in Normal mode with an empty history.
func (s *Simulator) Serialize() (string, error) {
	out := `{}`
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.Set(out, path, value)
	}

	set("version", stateVersion)
	set("session", s.sessionID)
	set("lines", s.buf.Lines())
	set("cursor.line", s.buf.Cursor().Line)
	set("cursor.col", s.buf.Cursor().Col)

	for name, c := range s.regs.Export() {
		base := fmt.Sprintf("registers.%c", name)
		set(base+".text", c.Text)
		set(base+".linewise", c.Linewise)
	}

	for _, name := range s.recorder.Registers() {
		set(fmt.Sprintf("macros.%c", name), key.FormatKeys(s.recorder.Get(name)))
	}

	if s.searches.Pattern() != "" {
		set("search.pattern", s.searches.Pattern())
		set("search.backward", s.searches.Direction() == search.Backward)
	}

	if err != nil {
		return "", fmt.Errorf("serialize session: %w", err)
	}
	return out, nil
}

// Deserialize restores a session serialized by Serialize. Structural
// problems (missing lines, wrong version) fail loudly; the simulator is
// left untouched on error.
func (s *Simulator) Deserialize(data string) error {
	if !gjson.Valid(data) {
		return fmt.Errorf("%w: not valid JSON", ErrBadState)
	}
	root := gjson.Parse(data)

	if v := root.Get("version"); !v.Exists() || v.Int() != stateVersion {
		return fmt.Errorf("%w: unsupported version %q", ErrBadState, root.Get("version").String())
	}
	linesVal := root.Get("lines")
	if !linesVal.IsArray() {
		return fmt.Errorf("%w: missing lines array", ErrBadState)
	}

	lines := make([]string, 0, len(linesVal.Array()))
	for _, lv := range linesVal.Array() {
		if lv.Type != gjson.String {
			return fmt.Errorf("%w: non-string line", ErrBadState)
		}
		lines = append(lines, lv.String())
	}
	if len(lines) == 0 {
		lines = []string{""}
	}

	// Validate registers and macros before mutating anything.
	regs := make(map[rune]register.Content)
	var regErr error
	root.Get("registers").ForEach(func(k, v gjson.Result) bool {
		name := []rune(k.String())
		if len(name) != 1 || !register.ValidName(name[0]) ||
			(name[0] >= 'A' && name[0] <= 'Z') {
			regErr = fmt.Errorf("%w: bad register name %q", ErrBadState, k.String())
			return false
		}
		regs[name[0]] = register.Content{
			Text:     v.Get("text").String(),
			Linewise: v.Get("linewise").Bool(),
		}
		return true
	})
	if regErr != nil {
		return regErr
	}

	macros := make(map[rune][]key.Event)
	var macroErr error
	root.Get("macros").ForEach(func(k, v gjson.Result) bool {
		name := []rune(k.String())
		events, err := key.ParseKeys(v.String())
		if len(name) != 1 || !macro.ValidRegister(name[0]) || err != nil {
			macroErr = fmt.Errorf("%w: bad macro %q", ErrBadState, k.String())
			return false
		}
		macros[name[0]] = events
		return true
	})
	if macroErr != nil {
		return macroErr
	}

	// Commit.
	s.buf.SetLines(lines)
	s.buf.AllowPastEOL(false)
	s.buf.SetCursor(buffer.Position{
		Line: int(root.Get("cursor.line").Int()),
		Col:  int(root.Get("cursor.col").Int()),
	})
	s.history.Clear()
	s.parser.Reset()
	s.modes.Switch(mode.Normal)
	s.cmdline = s.cmdline[:0]
	s.changeKeys = nil
	s.lastChange = nil
	s.cmdCapture = nil
	s.lastCommand = ""
	s.status = ""
	s.quit = false

	if session := root.Get("session").String(); session != "" {
		if _, err := uuid.Parse(session); err == nil {
			s.sessionID = session
		}
	}

	if err := s.regs.Import(regs); err != nil {
		return err
	}
	for name, events := range macros {
		if err := s.recorder.Set(name, events); err != nil {
			return err
		}
	}

	if pattern := root.Get("search.pattern").String(); pattern != "" {
		dir := search.Forward
		if root.Get("search.backward").Bool() {
			dir = search.Backward
		}
		// A pattern that no longer compiles is dropped, not fatal.
		_ = s.searches.SetPattern(pattern, dir)
	}
	return nil
}
