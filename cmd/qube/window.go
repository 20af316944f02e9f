package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/qube-arcade/internal/games/qube"
	"github.com/vovakirdan/qube-arcade/internal/platform/window"
	"github.com/vovakirdan/qube-arcade/internal/registry"
)

var flagWindowLevel string

var windowCmd = &cobra.Command{
	Use:   "window [mode]",
	Short: "Play in a desktop window",
	Long: `Play Qube in a desktop window instead of the terminal.

The window frontend is only compiled in with the ebiten build tag:
  go build -tags ebiten ./cmd/qube

Examples:
  qube window
  qube window static --level 04-crossfire`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagWindowLevel, "level", "", "Level ID to start at")
}

func runWindow(_ *cobra.Command, args []string) error {
	if !window.Available {
		return errors.New("this build has no window support; rebuild with -tags ebiten")
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	gameID, err := resolveMode(arg)
	if err != nil {
		return err
	}
	if err := checkLevel(flagWindowLevel); err != nil {
		return err
	}

	g, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	game, ok := g.(*qube.Game)
	if !ok {
		return fmt.Errorf("mode %q cannot run in a window", gameID)
	}
	game.StartAt(flagWindowLevel)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return window.Run(game, store, logger, flagFPS)
}
