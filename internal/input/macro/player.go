package macro

import (
	"errors"
	"fmt"

	"github.com/mglenn/vimulator/internal/input/key"
)

// Playback errors.
var (
	ErrEmptyMacro   = errors.New("macro register is empty")
	ErrNestedPlay   = errors.New("macro playback already in progress")
	ErrNoLastMacro  = errors.New("no previously played macro")
	ErrPlayWhileRec = errors.New("cannot play the register being recorded")
)

// Feed receives one replayed key event and reports whether playback
// should continue. Returning false aborts the rest of the macro, used
// when a replayed command fails.
type Feed func(event key.Event) bool

// Player replays recorded macros synchronously through a Feed. Nested
// playback (a macro invoking @) is rejected rather than recursed.
type Player struct {
	recorder *Recorder
	playing  bool
	last     rune
}

// NewPlayer creates a player reading from the given recorder.
func NewPlayer(recorder *Recorder) *Player {
	return &Player{recorder: recorder}
}

// Playing reports whether a playback is in progress.
func (p *Player) Playing() bool { return p.playing }

// LastPlayed returns the register of the most recent playback, 0 when
// none has run yet.
func (p *Player) LastPlayed() rune { return p.last }

// Play replays the named macro count times through feed. The register
// '@' repeats the last played macro. Playback stops early when feed
// returns false; the error reports only setup failures, not mid-macro
// command failures.
func (p *Player) Play(register rune, count int, feed Feed) error {
	if register == '@' {
		if p.last == 0 {
			return ErrNoLastMacro
		}
		register = p.last
	}
	if !ValidRegister(register) {
		return fmt.Errorf("invalid macro register %q", register)
	}
	if p.playing {
		return ErrNestedPlay
	}
	if p.recorder.Recording() && p.recorder.Register() == register {
		return ErrPlayWhileRec
	}

	events := p.recorder.Get(register)
	if len(events) == 0 {
		return ErrEmptyMacro
	}
	if count < 1 {
		count = 1
	}

	p.playing = true
	defer func() { p.playing = false }()
	p.last = register

	for i := 0; i < count; i++ {
		for _, ev := range events {
			if !feed(ev) {
				return nil
			}
		}
	}
	return nil
}
