package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/qube-arcade/internal/config"
	"github.com/vovakirdan/qube-arcade/internal/core"
	"github.com/vovakirdan/qube-arcade/internal/games/qube"
	"github.com/vovakirdan/qube-arcade/internal/games/qube/levels"
	"github.com/vovakirdan/qube-arcade/internal/registry"
	"github.com/vovakirdan/qube-arcade/internal/storage"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "qube",
})

// setup applies the global flags before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(lvl)
	log.SetDefault(logger)

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	qube.SetConfigPath(flagConfig)
	qube.SetDifficultyPreset(string(preset))

	if flagConfig != "" {
		// Reset falls back to defaults on a bad file; report it here
		if _, err := config.LoadQube(flagConfig); err != nil {
			return err
		}
	}

	if flagLevelDir != "" {
		lv, err := levels.NewLoader(flagLevelDir).LoadAll()
		if err != nil {
			fatal("cannot load levels", "dir", flagLevelDir, "error", err)
		}
		logger.Debug("levels loaded", "dir", flagLevelDir, "count", len(lv))
		qube.SetLevels(lv)
	}
	return nil
}

// fatal logs an error and exits.
func fatal(msg string, keyvals ...any) {
	logger.Error(msg, keyvals...)
	os.Exit(1)
}

// resolveMode maps a mode name or game ID to a registered game ID.
func resolveMode(arg string) (string, error) {
	id := arg
	switch arg {
	case "", "play":
		id = qube.IDPlay
	case "static":
		id = qube.IDStatic
	case "grid":
		id = qube.IDGrid
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown mode %q (want play, static or grid); run 'qube list'", arg)
	}
	return id, nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database, or returns nil with a warning so
// the game still runs without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

// checkLevel fails when id is set but not in the level set.
func checkLevel(id string) error {
	if id == "" {
		return nil
	}
	if _, err := levels.Find(qube.Levels(), id); err != nil {
		return err
	}
	return nil
}
