// Package config loads vimulator settings from a TOML file.
//
// A missing config file is not an error: Load returns the defaults so
// the simulator always starts with a usable configuration.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every user-tunable setting.
type Config struct {
	Editor  Editor  `toml:"editor"`
	UI      UI      `toml:"ui"`
	Session Session `toml:"session"`
}

// Editor tunes the engine itself.
type Editor struct {
	// UndoDepth bounds the undo history. Oldest states are dropped
	// once the limit is reached.
	UndoDepth int `toml:"undo_depth"`

	// TabWidth is the display width of a tab character.
	TabWidth int `toml:"tab_width"`
}

// UI tunes the terminal front end.
type UI struct {
	LineNumbers bool `toml:"line_numbers"`
	ShowStatus  bool `toml:"show_status"`
	ShowPending bool `toml:"show_pending"`
}

// Session controls practice file loading and state persistence.
type Session struct {
	// File is an optional text file loaded into the buffer at startup.
	File string `toml:"file"`

	// Reload reloads the buffer when File changes on disk.
	Reload bool `toml:"reload"`

	// StatePath, when set, is where the session snapshot is written
	// on quit and restored from on the next start.
	StatePath string `toml:"state_path"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Editor: Editor{
			UndoDepth: 100,
			TabWidth:  8,
		},
		UI: UI{
			LineNumbers: true,
			ShowStatus:  true,
			ShowPending: true,
		},
	}
}

// Load reads a TOML config file. A nonexistent path yields the
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadFrom reads a TOML config from a reader.
func LoadFrom(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return parse("<reader>", data)
}

func parse(source string, data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks settings for values the engine cannot honor.
func (c Config) Validate() error {
	if c.Editor.UndoDepth < 1 {
		return fmt.Errorf("editor.undo_depth must be at least 1, got %d", c.Editor.UndoDepth)
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", c.Editor.TabWidth)
	}
	return nil
}
