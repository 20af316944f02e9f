package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/qube-arcade/internal/games/qube"
	"github.com/vovakirdan/qube-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start Qube in interactive menu mode.

Pick a mode, then a start level. When a game ends, press B to return to
the menu. Tab opens the scoreboard.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  qube menu
  qube menu --fps 30
  qube menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		gameID := menuResult.GameID
		if gameID == "" {
			return nil
		}

		levelID := ""
		if gameID != qube.IDGrid {
			sel, updated, err := tui.RunLevelSelector(store, gameID, cfg)
			if err != nil {
				return err
			}
			cfg = updated
			if sel == nil {
				continue // Back to menu
			}
			levelID = sel.LevelID
		}

		// New seed for each game
		cfg.Seed = time.Now().UnixNano()

		back, err := playGame(gameID, levelID, store, cfg)
		if err != nil {
			logger.Error("game failed", "game", gameID, "error", err)
			continue
		}
		if !back {
			return nil // Quit from inside the game
		}
	}
}
