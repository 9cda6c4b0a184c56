// Package tui runs the simulator inside a terminal using tcell.
package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"github.com/mglenn/vimulator/internal/config"
	"github.com/mglenn/vimulator/internal/simulator"
)

// App owns the terminal screen and drives the simulator from key
// events. It is single-goroutine except for the optional file watcher,
// which only posts wakeup events.
type App struct {
	screen     tcell.Screen
	sim        *simulator.Simulator
	cfg        config.Config
	topLine    int
	lastFailed bool

	watcher  *fsnotify.Watcher
	reloadCh chan string
}

// New creates an App around an existing simulator.
func New(sim *simulator.Simulator, cfg config.Config) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return &App{
		screen:   screen,
		sim:      sim,
		cfg:      cfg,
		reloadCh: make(chan string, 1),
	}, nil
}

// Run initializes the terminal and processes events until the
// simulator quits or the screen is torn down.
func (a *App) Run() error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer a.screen.Fini()

	if a.cfg.Session.Reload && a.cfg.Session.File != "" {
		if err := a.watchFile(a.cfg.Session.File); err != nil {
			fmt.Fprintf(os.Stderr, "vimulator: watch %s: %v\n", a.cfg.Session.File, err)
		}
		defer a.closeWatcher()
	}

	a.render()
	for {
		ev := a.screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventKey:
			event, ok := translateKey(e)
			if !ok {
				continue
			}
			out := a.sim.ProcessInput(event)
			a.lastFailed = out.Failed
			if out.Quit {
				return nil
			}

		case *tcell.EventResize:
			a.screen.Sync()

		case *tcell.EventInterrupt:
			a.drainReloads()

		case nil:
			return nil
		}
		a.render()
	}
}

// watchFile reloads the buffer when the practice file changes on disk.
func (a *App) watchFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return err
	}
	a.watcher = w

	go func() {
		for ev := range w.Events {
			if ev.Name != abs {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				select {
				case a.reloadCh <- abs:
				default:
				}
				// Wake the poll loop so the reload happens on the
				// event goroutine.
				_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()
	return nil
}

func (a *App) closeWatcher() {
	if a.watcher != nil {
		a.watcher.Close()
	}
}

func (a *App) drainReloads() {
	select {
	case path := <-a.reloadCh:
		data, err := os.ReadFile(path)
		if err != nil {
			return
		}
		if err := a.sim.LoadContent(string(data)); err != nil {
			return
		}
		a.topLine = 0
	default:
	}
}
