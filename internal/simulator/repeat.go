package simulator

import (
	"github.com/mglenn/vimulator/internal/input/key"
	"github.com/mglenn/vimulator/internal/input/mode"
)

// Dot-repeat works on literal keys: the keystrokes of the last buffer
// change are kept and re-fed through process when . runs. An insert
// session stays open in the capture until Escape closes it, so ihello
// followed by Escape repeats as a whole.

// captureChangeKey accumulates the keys of the command in progress.
// Command-line input is excluded; . does not repeat ex commands.
func (s *Simulator) captureChangeKey(event key.Event) {
	if s.replaying || s.modes.Current() == mode.Command {
		return
	}
	s.changeKeys = append(s.changeKeys, event)
}

// finishChange promotes the captured keys to the repeatable change.
func (s *Simulator) finishChange() {
	if s.replaying {
		s.changeKeys = s.changeKeys[:0]
		return
	}
	if len(s.changeKeys) > 0 {
		s.lastChange = make([]key.Event, len(s.changeKeys))
		copy(s.lastChange, s.changeKeys)
	}
	s.changeKeys = s.changeKeys[:0]
}

// discardChange drops the capture without touching the last change.
func (s *Simulator) discardChange() {
	s.changeKeys = s.changeKeys[:0]
}

// repeatLastChange replays the last change count times.
func (s *Simulator) repeatLastChange(count int) {
	s.discardChange()
	if len(s.lastChange) == 0 {
		s.fail("no change to repeat")
		return
	}
	events := make([]key.Event, len(s.lastChange))
	copy(events, s.lastChange)

	s.replaying = true
	defer func() { s.replaying = false }()

	for i := 0; i < count; i++ {
		for _, ev := range events {
			s.process(ev)
		}
	}
}
