package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mglenn/vimulator/internal/input/key"
)

// translateKey maps a tcell key press onto an engine key event.
// Returns false for keys the engine has no representation for.
func translateKey(ev *tcell.EventKey) (key.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter), true
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown), true
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight), true
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome), true
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd), true
	case tcell.KeyRune:
		event := key.NewRuneEvent(ev.Rune())
		if ev.Modifiers()&tcell.ModAlt != 0 {
			event.Modifiers = event.Modifiers.With(key.ModAlt)
		}
		return event, true
	}

	// tcell folds Ctrl chords into dedicated key codes.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + (ev.Key() - tcell.KeyCtrlA))
		return key.NewCtrlEvent(r), true
	}

	return key.Event{}, false
}
