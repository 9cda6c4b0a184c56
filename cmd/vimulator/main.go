// Package main is the entry point for the vimulator terminal front end.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mglenn/vimulator/internal/config"
	"github.com/mglenn/vimulator/internal/simulator"
	"github.com/mglenn/vimulator/internal/tui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		statePath   string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "vimulator.toml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "vimulator.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&statePath, "state", "", "Session state file (overrides session.state_path)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Vimulator - modal editing practice in your terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vimulator [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("vimulator %s\n", version)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if args := flag.Args(); len(args) > 0 {
		cfg.Session.File = args[0]
	}
	if statePath != "" {
		cfg.Session.StatePath = statePath
	}

	sim := simulator.New()
	sim.SetUndoDepth(cfg.Editor.UndoDepth)

	if err := restoreSession(sim, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	app, err := tui.New(sim, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := saveSession(sim, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// restoreSession prefers a saved state snapshot over the practice
// file so registers and macros survive restarts.
func restoreSession(sim *simulator.Simulator, cfg config.Config) error {
	if cfg.Session.StatePath != "" {
		data, err := os.ReadFile(cfg.Session.StatePath)
		if err == nil {
			if derr := sim.Deserialize(string(data)); derr != nil {
				return fmt.Errorf("restoring session %s: %w", cfg.Session.StatePath, derr)
			}
			return nil
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading session %s: %w", cfg.Session.StatePath, err)
		}
	}

	if cfg.Session.File != "" {
		data, err := os.ReadFile(cfg.Session.File)
		if err != nil {
			return fmt.Errorf("reading %s: %w", cfg.Session.File, err)
		}
		if err := sim.LoadContent(string(data)); err != nil {
			return fmt.Errorf("loading %s: %w", cfg.Session.File, err)
		}
	}
	return nil
}

func saveSession(sim *simulator.Simulator, cfg config.Config) error {
	if cfg.Session.StatePath == "" {
		return nil
	}
	data, err := sim.Serialize()
	if err != nil {
		return fmt.Errorf("serializing session: %w", err)
	}
	if err := os.WriteFile(cfg.Session.StatePath, []byte(data), 0o644); err != nil {
		return fmt.Errorf("writing session %s: %w", cfg.Session.StatePath, err)
	}
	return nil
}
