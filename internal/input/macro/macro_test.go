package macro

import (
	"testing"

	"github.com/mglenn/vimulator/internal/input/key"
)

func TestRecordAndGet(t *testing.T) {
	r := NewRecorder()
	if err := r.Start('a'); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, ev := range key.MustParseKeys("ihi<Esc>") {
		r.Record(ev)
	}
	saved := r.Stop()

	if len(saved) != 4 {
		t.Fatalf("recorded %d events, want 4", len(saved))
	}
	got := r.Get('a')
	if len(got) != 4 {
		t.Errorf("Get returned %d events", len(got))
	}
	if key.FormatKeys(got) != "ihi<Esc>" {
		t.Errorf("macro = %q", key.FormatKeys(got))
	}
}

func TestStartValidation(t *testing.T) {
	r := NewRecorder()
	if err := r.Start('A'); err == nil {
		t.Errorf("uppercase register accepted")
	}
	if err := r.Start('1'); err == nil {
		t.Errorf("digit register accepted")
	}
	r.Start('a')
	if err := r.Start('b'); err == nil {
		t.Errorf("nested recording accepted")
	}
}

func TestRecordingOverwrites(t *testing.T) {
	r := NewRecorder()
	r.Start('a')
	r.Record(key.NewRuneEvent('x'))
	r.Stop()

	r.Start('a')
	r.Record(key.NewRuneEvent('y'))
	r.Stop()

	got := r.Get('a')
	if len(got) != 1 || got[0].Rune != 'y' {
		t.Errorf("macro = %v, want just y", got)
	}
}

func TestEmptyRecordingClearsRegister(t *testing.T) {
	r := NewRecorder()
	r.Start('a')
	r.Record(key.NewRuneEvent('x'))
	r.Stop()

	// qaq: start and immediately stop.
	r.Start('a')
	r.Stop()
	if len(r.Get('a')) != 0 {
		t.Errorf("register a = %v, want cleared", r.Get('a'))
	}
}

func TestRecordWhileIdleIsNoOp(t *testing.T) {
	r := NewRecorder()
	r.Record(key.NewRuneEvent('x'))
	r.Start('a')
	r.Stop()
	if len(r.Get('a')) != 0 {
		t.Errorf("idle Record leaked into recording")
	}
}

func TestPlayFeedsEventsCountTimes(t *testing.T) {
	r := NewRecorder()
	r.Start('m')
	for _, ev := range key.MustParseKeys("dw") {
		r.Record(ev)
	}
	r.Stop()

	p := NewPlayer(r)
	var fed []key.Event
	err := p.Play('m', 3, func(ev key.Event) bool {
		fed = append(fed, ev)
		return true
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(fed) != 6 {
		t.Errorf("fed %d events, want 6", len(fed))
	}
}

func TestPlayEmptyRegister(t *testing.T) {
	p := NewPlayer(NewRecorder())
	err := p.Play('z', 1, func(key.Event) bool { return true })
	if err != ErrEmptyMacro {
		t.Errorf("err = %v, want ErrEmptyMacro", err)
	}
}

func TestPlayAtRepeatsLast(t *testing.T) {
	r := NewRecorder()
	r.Start('k')
	r.Record(key.NewRuneEvent('x'))
	r.Stop()

	p := NewPlayer(r)
	if err := p.Play('@', 1, func(key.Event) bool { return true }); err != ErrNoLastMacro {
		t.Errorf("@@ before any play: err = %v", err)
	}

	p.Play('k', 1, func(key.Event) bool { return true })

	count := 0
	if err := p.Play('@', 1, func(key.Event) bool { count++; return true }); err != nil {
		t.Fatalf("@@ replay: %v", err)
	}
	if count != 1 {
		t.Errorf("@@ fed %d events", count)
	}
	if p.LastPlayed() != 'k' {
		t.Errorf("LastPlayed = %q", p.LastPlayed())
	}
}

func TestPlayRejectsNesting(t *testing.T) {
	r := NewRecorder()
	r.Start('a')
	r.Record(key.NewRuneEvent('x'))
	r.Stop()

	p := NewPlayer(r)
	var nested error
	p.Play('a', 1, func(key.Event) bool {
		nested = p.Play('a', 1, func(key.Event) bool { return true })
		return true
	})
	if nested != ErrNestedPlay {
		t.Errorf("nested play err = %v", nested)
	}
}

func TestPlayAbortsWhenFeedFails(t *testing.T) {
	r := NewRecorder()
	r.Start('a')
	for _, ev := range key.MustParseKeys("xxx") {
		r.Record(ev)
	}
	r.Stop()

	p := NewPlayer(r)
	fed := 0
	p.Play('a', 5, func(key.Event) bool {
		fed++
		return fed < 2
	})
	if fed != 2 {
		t.Errorf("fed %d events, want playback to stop at 2", fed)
	}
}

func TestPlayWhileRecordingSameRegister(t *testing.T) {
	r := NewRecorder()
	r.Start('a')
	r.Record(key.NewRuneEvent('x'))
	r.Stop()

	r.Start('a')
	p := NewPlayer(r)
	if err := p.Play('a', 1, func(key.Event) bool { return true }); err != ErrPlayWhileRec {
		t.Errorf("err = %v, want ErrPlayWhileRec", err)
	}
}
