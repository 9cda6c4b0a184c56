package macro

import (
	"fmt"

	"github.com/mglenn/vimulator/internal/input/key"
)

// Recorder captures key sequences into macro registers a-z. The q that
// starts and the q that stops a recording are never part of the macro;
// the caller routes keys through Record only while recording is active.
type Recorder struct {
	recording bool
	register  rune
	events    []key.Event
	registers map[rune][]key.Event
}

// NewRecorder creates a recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{registers: make(map[rune][]key.Event)}
}

// ValidRegister reports whether r can hold a macro.
func ValidRegister(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// Start begins recording into the given register, discarding its
// previous contents.
func (r *Recorder) Start(register rune) error {
	if !ValidRegister(register) {
		return fmt.Errorf("invalid macro register %q", register)
	}
	if r.recording {
		return fmt.Errorf("already recording into register %q", r.register)
	}
	r.recording = true
	r.register = register
	r.events = r.events[:0]
	return nil
}

// Stop ends the recording and saves it. An empty recording still
// replaces the register, matching qaq clearing a macro.
func (r *Recorder) Stop() []key.Event {
	if !r.recording {
		return nil
	}
	r.recording = false
	saved := make([]key.Event, len(r.events))
	copy(saved, r.events)
	r.registers[r.register] = saved
	r.events = r.events[:0]
	return saved
}

// Recording reports whether a recording is in progress.
func (r *Recorder) Recording() bool { return r.recording }

// Register returns the register being recorded into, 0 when idle.
func (r *Recorder) Register() rune {
	if r.recording {
		return r.register
	}
	return 0
}

// Record appends one key event to the active recording. A no-op when
// not recording.
func (r *Recorder) Record(event key.Event) {
	if r.recording {
		r.events = append(r.events, event)
	}
}

// Get returns the macro stored in a register, nil when empty.
func (r *Recorder) Get(register rune) []key.Event {
	return r.registers[register]
}

// Set stores a macro directly, used when restoring serialized state.
func (r *Recorder) Set(register rune, events []key.Event) error {
	if !ValidRegister(register) {
		return fmt.Errorf("invalid macro register %q", register)
	}
	saved := make([]key.Event, len(events))
	copy(saved, events)
	r.registers[register] = saved
	return nil
}

// Registers returns the names of all non-empty macro registers.
func (r *Recorder) Registers() []rune {
	names := make([]rune, 0, len(r.registers))
	for name, events := range r.registers {
		if len(events) > 0 {
			names = append(names, name)
		}
	}
	return names
}
