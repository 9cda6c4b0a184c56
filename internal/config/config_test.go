package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Editor.UndoDepth != 100 {
		t.Errorf("UndoDepth = %d", cfg.Editor.UndoDepth)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Errorf("TabWidth = %d", cfg.Editor.TabWidth)
	}
	if !cfg.UI.ShowStatus || !cfg.UI.ShowPending || !cfg.UI.LineNumbers {
		t.Errorf("UI defaults = %+v", cfg.UI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := LoadFrom(strings.NewReader(`
[editor]
undo_depth = 50
tab_width = 4

[ui]
line_numbers = false

[session]
file = "practice.txt"
reload = true
`))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Editor.UndoDepth != 50 || cfg.Editor.TabWidth != 4 {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if cfg.UI.LineNumbers {
		t.Errorf("line_numbers not overridden")
	}
	// Untouched sections keep their defaults.
	if !cfg.UI.ShowStatus {
		t.Errorf("show_status lost its default")
	}
	if cfg.Session.File != "practice.txt" || !cfg.Session.Reload {
		t.Errorf("session = %+v", cfg.Session)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for _, body := range []string{
		"[editor]\nundo_depth = 0",
		"[editor]\ntab_width = 99",
		"editor = not valid toml",
	} {
		if _, err := LoadFrom(strings.NewReader(body)); err == nil {
			t.Errorf("LoadFrom(%q) accepted", body)
		}
	}
}

func TestWatchFileReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vimulator.toml")
	if err := os.WriteFile(path, []byte("[editor]\nundo_depth = 10"), 0o644); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var got []Config
	reloaded := make(chan struct{}, 4)

	w, err := WatchFile(path, func(cfg Config) {
		mu.Lock()
		got = append(got, cfg)
		mu.Unlock()
		reloaded <- struct{}{}
	}, nil)
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[editor]\nundo_depth = 20"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) == 0 || got[len(got)-1].Editor.UndoDepth != 20 {
		t.Errorf("reloaded configs = %+v", got)
	}
}

func TestWatchFileReportsLoadErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vimulator.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	errs := make(chan error, 4)
	w, err := WatchFile(path, func(Config) {
		t.Error("reload callback ran for invalid config")
	}, func(err error) {
		errs <- err
	})
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[editor]\nundo_depth = 0"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-errs:
	case <-time.After(5 * time.Second):
		t.Fatal("no error after invalid write")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vimulator.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := WatchFile(path, func(Config) {}, nil)
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
