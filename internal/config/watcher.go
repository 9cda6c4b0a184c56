package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives the freshly loaded configuration after the
// watched file changes. Load errors go to ErrorFunc instead.
type ReloadFunc func(Config)

// ErrorFunc receives watch or reload errors.
type ErrorFunc func(error)

// Watcher reloads a config file when it changes on disk. It watches
// the parent directory rather than the file itself so editors that
// replace the file via rename are still picked up.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	onReload ReloadFunc
	onError  ErrorFunc
	debounce time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	closeCh chan struct{}
	done    sync.WaitGroup
}

// WatchFile starts watching path and invokes onReload with the parsed
// config after each change. onError may be nil.
func WatchFile(path string, onReload ReloadFunc, onError ErrorFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsw:      fsw,
		onReload: onReload,
		onError:  onError,
		debounce: 100 * time.Millisecond,
		closeCh:  make(chan struct{}),
	}
	w.done.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.done.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.done.Done()
	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				w.scheduleReload()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

// scheduleReload debounces bursts of events from a single save.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	w.onReload(cfg)
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
