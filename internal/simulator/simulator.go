// Package simulator is the engine facade: one buffer, one mode machine,
// one instance of every subsystem, driven key by key through
// ProcessInput.
package simulator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mglenn/vimulator/internal/engine/buffer"
	"github.com/mglenn/vimulator/internal/engine/history"
	"github.com/mglenn/vimulator/internal/input/key"
	"github.com/mglenn/vimulator/internal/input/macro"
	"github.com/mglenn/vimulator/internal/input/mode"
	"github.com/mglenn/vimulator/internal/input/vim"
	"github.com/mglenn/vimulator/internal/register"
	"github.com/mglenn/vimulator/internal/search"
)

// ErrInvalidContent is returned by LoadContent for input the buffer
// cannot represent.
var ErrInvalidContent = errors.New("content contains NUL bytes")

// Outcome reports the observable result of one processed key.
type Outcome struct {
	Mode          mode.Kind
	Cursor        buffer.Position
	BufferChanged bool
	Status        string
	Pending       string

	// Failed marks a command that errored as a no-op (bad register,
	// pattern not found...). Macro playback aborts on it.
	Failed bool

	// Quit is set once an ex quit command has run.
	Quit bool
}

// Simulator owns a complete editing session. It is not safe for
// concurrent use; callers feed it one key at a time.
type Simulator struct {
	buf      *buffer.Buffer
	history  *history.History
	regs     *register.Store
	modes    *mode.Machine
	parser   *vim.Parser
	recorder *macro.Recorder
	player   *macro.Player
	searches *search.State

	sessionID string

	// Command-line accumulation, active in mode.Command.
	cmdPrefix rune
	cmdline   []rune

	// Dot-repeat capture.
	changeKeys []key.Event // keys of the command in progress
	lastChange []key.Event
	replaying  bool

	// Last completed grammar command, for the display state.
	cmdCapture  []key.Event
	lastCommand string

	// One snapshot per insert session.
	insertSnapshot bool

	status string
	failed bool
	quit   bool
}

// New creates a simulator with an empty buffer.
func New() *Simulator {
	return NewWithContent("")
}

// NewWithContent creates a simulator preloaded with text.
func NewWithContent(content string) *Simulator {
	s := &Simulator{
		buf:       buffer.FromString(content),
		history:   history.New(history.DefaultMaxEntries),
		regs:      register.NewStore(),
		modes:     mode.NewMachine(),
		parser:    vim.NewParser(),
		recorder:  macro.NewRecorder(),
		searches:  search.NewState(),
		sessionID: uuid.NewString(),
	}
	s.player = macro.NewPlayer(s.recorder)
	return s
}

// SetUndoDepth bounds the undo history. Intended as a startup knob:
// any existing history is discarded.
func (s *Simulator) SetUndoDepth(n int) {
	s.history = history.New(n)
}

// SessionID returns the stable identity of this session, preserved
// across Serialize/Deserialize.
func (s *Simulator) SessionID() string { return s.sessionID }

// Mode returns the active mode.
func (s *Simulator) Mode() mode.Kind { return s.modes.Current() }

// Cursor returns the cursor position.
func (s *Simulator) Cursor() buffer.Position { return s.buf.Cursor() }

// Quit reports whether an ex quit command has run.
func (s *Simulator) Quit() bool { return s.quit }

// LoadContent replaces the buffer, resets the cursor, clears history
// and pending input, and returns to Normal mode. Registers and macros
// survive, matching :e on a new file.
func (s *Simulator) LoadContent(content string) error {
	for _, r := range content {
		if r == 0 {
			return ErrInvalidContent
		}
	}
	s.buf.SetText(content)
	s.history.Clear()
	s.parser.Reset()
	s.modes.Switch(mode.Normal)
	s.buf.AllowPastEOL(false)
	s.cmdline = nil
	s.changeKeys = nil
	s.cmdCapture = nil
	s.lastCommand = ""
	s.status = ""
	return nil
}

// GetContent returns the buffer text joined with newlines.
func (s *Simulator) GetContent() string {
	return s.buf.Text()
}

// ProcessKeys feeds a whole key-notation string, returning the final
// outcome. Useful for tests and scripted lessons.
func (s *Simulator) ProcessKeys(keys string) (Outcome, error) {
	events, err := key.ParseKeys(keys)
	if err != nil {
		return Outcome{}, fmt.Errorf("parse keys: %w", err)
	}
	var out Outcome
	for _, ev := range events {
		out = s.ProcessInput(ev)
	}
	return out, nil
}

// ProcessInput handles one key event and returns what changed.
func (s *Simulator) ProcessInput(event key.Event) Outcome {
	// Macro recording captures every key except the q that stops the
	// recording; the starting q{reg} ran before recording was on.
	if s.recorder.Recording() && !s.isStopRecordingKey(event) {
		s.recorder.Record(event)
	}
	return s.process(event)
}

// process is the raw dispatch used by both user input and macro
// playback.
func (s *Simulator) process(event key.Event) Outcome {
	s.status = ""
	s.failed = false
	before := s.buf.Text()
	s.captureChangeKey(event)

	switch {
	case s.modes.Current() == mode.Insert:
		s.processInsert(event)
	case s.modes.Current() == mode.Command:
		s.processCommandLine(event)
	default:
		s.processNormal(event)
	}

	return Outcome{
		Mode:          s.modes.Current(),
		Cursor:        s.buf.Cursor(),
		BufferChanged: s.buf.Text() != before,
		Status:        s.status,
		Pending:       s.parser.Pending(),
		Failed:        s.failed,
		Quit:          s.quit,
	}
}

// processNormal drives normal and visual mode through the grammar
// parser.
func (s *Simulator) processNormal(event key.Event) {
	// Escape leaves visual mode and clears anything pending.
	if event.IsEscape() {
		s.parser.Reset()
		s.cmdCapture = s.cmdCapture[:0]
		s.discardChange()
		if s.modes.Current().IsVisual() {
			s.modes.Switch(mode.Normal)
		}
		return
	}

	// q stops an active recording; the grammar never sees it.
	if s.isStopRecordingKey(event) {
		s.recorder.Stop()
		return
	}

	s.parser.SetVisual(s.modes.Current().IsVisual())
	s.cmdCapture = append(s.cmdCapture, event)
	res := s.parser.Parse(event)
	switch res.Status {
	case vim.StatusPending:
		return
	case vim.StatusInvalid:
		s.fail("unrecognized command")
		s.cmdCapture = s.cmdCapture[:0]
		s.discardChange()
	case vim.StatusDiscard:
		s.cmdCapture = s.cmdCapture[:0]
		s.discardChange()
	case vim.StatusComplete:
		s.lastCommand = key.FormatKeys(s.cmdCapture)
		s.cmdCapture = s.cmdCapture[:0]
		if s.modes.Current().IsVisual() {
			s.executeVisual(res.Command)
		} else {
			s.executeNormal(res.Command)
		}
	}
}

// isStopRecordingKey reports whether this q ends the active recording.
func (s *Simulator) isStopRecordingKey(event key.Event) bool {
	return s.recorder.Recording() &&
		s.modes.Current() == mode.Normal &&
		s.parser.Idle() &&
		event.IsPlainRune() && event.Rune == 'q'
}

// fail records a user-level error: status message, no buffer change.
func (s *Simulator) fail(format string, args ...any) {
	s.status = fmt.Sprintf(format, args...)
	s.failed = true
}

// note sets an informational status message.
func (s *Simulator) note(format string, args ...any) {
	s.status = fmt.Sprintf(format, args...)
}

// pushUndo snapshots the buffer before a mutation.
func (s *Simulator) pushUndo() {
	s.history.Push(s.buf)
}

// enterInsert switches to Insert mode. When the entry command already
// mutated the buffer it took the session's undo snapshot; otherwise the
// snapshot is deferred until the first edit, so i followed by Escape
// leaves no empty undo state.
func (s *Simulator) enterInsert(snapshotTaken bool) {
	s.insertSnapshot = snapshotTaken
	s.buf.AllowPastEOL(true)
	s.modes.Switch(mode.Insert)
}

// leaveInsert returns to Normal mode. The cursor stays where the insertion
// ended, even one past the last character; the next cursor movement clamps
// it. An insert session that made no edit does not become the last change.
func (s *Simulator) leaveInsert() {
	edited := s.insertSnapshot
	s.modes.Switch(mode.Normal)
	s.insertSnapshot = false
	s.buf.AllowPastEOL(false)
	if edited {
		s.finishChange()
	} else {
		s.discardChange()
	}
}
