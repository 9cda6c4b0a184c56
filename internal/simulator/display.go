package simulator

import (
	"github.com/mglenn/vimulator/internal/engine/buffer"
	"github.com/mglenn/vimulator/internal/input/mode"
)

// DisplayState is a read-only snapshot of everything a front-end needs
// to render one frame.
type DisplayState struct {
	Lines  []string
	Cursor buffer.Position
	Mode   mode.Kind

	// ModeLabel is the status-line tag, e.g. "-- INSERT --".
	ModeLabel string

	// Status is the transient message from the last command.
	Status string

	// CommandLine is the in-progress : / ? input, prefix included.
	CommandLine string

	// Pending shows partially typed normal-mode commands.
	Pending string

	// Recording is the active macro register, 0 when idle.
	Recording rune

	// SearchPattern is the last search pattern, for highlight support.
	SearchPattern string

	// LastCommand is the key notation of the last completed normal or
	// visual command, empty before the first one.
	LastCommand string
}

// DisplayState captures the current render state.
func (s *Simulator) DisplayState() DisplayState {
	return DisplayState{
		Lines:         s.buf.Lines(),
		Cursor:        s.buf.Cursor(),
		Mode:          s.modes.Current(),
		ModeLabel:     s.modes.Current().DisplayName(),
		Status:        s.status,
		CommandLine:   s.CommandLine(),
		Pending:       s.parser.Pending(),
		Recording:     s.recorder.Register(),
		SearchPattern: s.searches.Pattern(),
		LastCommand:   s.lastCommand,
	}
}
