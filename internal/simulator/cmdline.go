package simulator

import (
	"strconv"
	"strings"

	"github.com/mglenn/vimulator/internal/input/key"
	"github.com/mglenn/vimulator/internal/input/mode"
	"github.com/mglenn/vimulator/internal/search"
)

// openCommandLine enters command-line mode with : / or ?.
func (s *Simulator) openCommandLine(prefix rune) {
	s.discardChange()
	s.cmdPrefix = prefix
	s.cmdline = s.cmdline[:0]
	s.modes.Switch(mode.Command)
}

// CommandLine returns the command line as displayed, prefix included,
// empty outside command-line mode.
func (s *Simulator) CommandLine() string {
	if s.modes.Current() != mode.Command {
		return ""
	}
	return string(s.cmdPrefix) + string(s.cmdline)
}

// processCommandLine handles one key in command-line mode.
func (s *Simulator) processCommandLine(event key.Event) {
	switch {
	case event.IsEscape():
		s.modes.Switch(mode.Normal)
		s.cmdline = s.cmdline[:0]

	case event.IsEnter():
		line := string(s.cmdline)
		prefix := s.cmdPrefix
		s.cmdline = s.cmdline[:0]
		s.modes.Switch(mode.Normal)
		if prefix == ':' {
			s.runEx(line)
		} else {
			s.runSearch(prefix, line)
		}

	case event.IsBackspace():
		if len(s.cmdline) == 0 {
			s.modes.Switch(mode.Normal)
			return
		}
		s.cmdline = s.cmdline[:len(s.cmdline)-1]

	case event.IsPlainRune():
		s.cmdline = append(s.cmdline, event.Rune)
	}
}

// runSearch executes / or ? with the typed pattern. An empty pattern
// repeats the previous one in the new direction.
func (s *Simulator) runSearch(prefix rune, pattern string) {
	dir := search.Forward
	if prefix == '?' {
		dir = search.Backward
	}

	if pattern == "" {
		pattern = s.searches.Pattern()
		if pattern == "" {
			s.fail("no previous search pattern")
			return
		}
	}
	if err := s.searches.SetPattern(pattern, dir); err != nil {
		s.fail("invalid pattern: %v", err)
		return
	}

	pos, err := s.searches.Find(s.buf, s.buf.Cursor())
	if err != nil {
		s.fail("Pattern not found: %s", pattern)
		return
	}
	s.buf.SetCursor(pos)
}

// runEx executes one ex command line.
func (s *Simulator) runEx(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	switch line {
	case "q", "q!", "quit", "wq", "x", "xit":
		s.quit = true
		return
	case "w", "write":
		s.note("buffer written (simulated)")
		return
	case "$":
		s.buf.MoveToLine(s.buf.LineCount() - 1)
		return
	}

	// Bare line number: go to it.
	if n, err := strconv.Atoi(line); err == nil {
		s.buf.MoveToLine(n - 1)
		return
	}

	if cmd, ok := s.parseSubstitute(line); ok {
		s.runSubstitute(cmd)
		return
	}

	s.fail("not an editor command: %s", line)
}

// substituteCmd is a parsed :[range]s/pat/rep/flags.
type substituteCmd struct {
	startLine int
	endLine   int
	pattern   string
	replace   string
	global    bool
	confirm   bool
}

// parseSubstitute recognizes the substitute syntax with an optional
// range of %, N,M, ., or $ addresses. Reports false when line is not a
// substitute at all; address errors surface later as failed commands.
func (s *Simulator) parseSubstitute(line string) (substituteCmd, bool) {
	cmd := substituteCmd{
		startLine: s.buf.Cursor().Line,
		endLine:   s.buf.Cursor().Line,
	}

	rest := line
	switch {
	case strings.HasPrefix(rest, "%"):
		cmd.startLine = 0
		cmd.endLine = s.buf.LineCount() - 1
		rest = rest[1:]
	default:
		var start, end int
		var ok bool
		if start, rest, ok = s.parseAddress(rest); ok {
			cmd.startLine = start
			cmd.endLine = start
			if strings.HasPrefix(rest, ",") {
				if end, rest, ok = s.parseAddress(rest[1:]); !ok {
					return cmd, false
				}
				cmd.endLine = end
			}
		}
	}

	if !strings.HasPrefix(rest, "s") || len(rest) < 2 {
		return cmd, false
	}
	sep := rune(rest[1])
	if sep == ' ' || isAlphaNumeric(sep) {
		return cmd, false
	}

	parts := splitEscaped(rest[2:], sep)
	cmd.pattern = parts[0]
	if len(parts) > 1 {
		cmd.replace = parts[1]
	}
	if len(parts) > 2 {
		flags := parts[2]
		cmd.global = strings.Contains(flags, "g")
		cmd.confirm = strings.Contains(flags, "c")
		if strings.Contains(flags, "i") {
			cmd.pattern = "(?i)" + cmd.pattern
		}
	}
	return cmd, true
}

// parseAddress consumes one ex address: a line number, . or $.
func (s *Simulator) parseAddress(rest string) (int, string, bool) {
	if rest == "" {
		return 0, rest, false
	}
	switch rest[0] {
	case '.':
		return s.buf.Cursor().Line, rest[1:], true
	case '$':
		return s.buf.LineCount() - 1, rest[1:], true
	}
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, rest, false
	}
	n, _ := strconv.Atoi(rest[:i])
	return n - 1, rest[i:], true
}

// splitEscaped splits on sep, honoring backslash escapes of it.
func splitEscaped(text string, sep rune) []string {
	parts := []string{""}
	escaped := false
	for _, r := range text {
		switch {
		case escaped:
			if r != sep {
				parts[len(parts)-1] += "\\"
			}
			parts[len(parts)-1] += string(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == sep:
			parts = append(parts, "")
		default:
			parts[len(parts)-1] += string(r)
		}
	}
	if escaped {
		parts[len(parts)-1] += "\\"
	}
	return parts
}

func isAlphaNumeric(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// runSubstitute applies a parsed substitute to the buffer.
func (s *Simulator) runSubstitute(cmd substituteCmd) {
	if cmd.pattern == "" {
		s.fail("no substitute pattern")
		return
	}
	if cmd.confirm {
		s.fail("confirm flag not supported")
		return
	}
	last := s.buf.LineCount() - 1
	if cmd.startLine < 0 || cmd.endLine > last || cmd.startLine > cmd.endLine {
		s.fail("invalid range")
		return
	}

	lines := s.buf.Lines()
	count, lastLine, err := search.Substitute(lines, cmd.startLine, cmd.endLine, cmd.pattern, cmd.replace, cmd.global)
	if err == search.ErrNotFound {
		s.fail("Pattern not found: %s", cmd.pattern)
		return
	}
	if err != nil {
		s.fail("invalid pattern: %v", err)
		return
	}

	s.pushUndo()
	s.buf.SetLines(lines)
	s.buf.MoveToLine(lastLine)
	if count > 1 {
		s.note("%d substitutions", count)
	}
}
