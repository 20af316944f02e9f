package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/qube-arcade/internal/core"
	"github.com/vovakirdan/qube-arcade/internal/games/qube"
	"github.com/vovakirdan/qube-arcade/internal/platform/tui"
	"github.com/vovakirdan/qube-arcade/internal/registry"
	"github.com/vovakirdan/qube-arcade/internal/storage"
)

var (
	flagStartLevel string
	flagPick       bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing. Modes:

  play    - the full game (default)
  static  - a puzzle drawn over the stage; move the cursor and mark cells
  grid    - the empty stage grid

Controls:
  Arrows/WASD  - Move cursor
  Space        - Mark a cell; press again to detonate the mark
  X            - Detonate advantage marks
  F            - Roll the puzzle one row now
  P/Esc        - Pause
  R            - Restart (after game over)
  B            - Back (while paused or after game over)
  Ctrl+S       - Save a screenshot to ~/.qube/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Deeper stage to lose, slower rolls
  normal - Rolls speed up as you score
  hard   - Shallow stage to lose, faster rolls
  fixed  - No speed-up

Examples:
  qube play
  qube play static --level 02-forbidden
  qube play --pick
  qube play --difficulty hard --config ./my-qube.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagStartLevel, "level", "", "Level ID to start at")
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose the start level from a list")
}

func runPlay(_ *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	gameID, err := resolveMode(arg)
	if err != nil {
		return err
	}
	if err := checkLevel(flagStartLevel); err != nil {
		return err
	}

	cfg := runtimeConfig()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	levelID := flagStartLevel
	if flagPick && gameID != qube.IDGrid {
		sel, updated, err := tui.RunLevelSelector(store, gameID, cfg)
		if err != nil {
			return err
		}
		cfg = updated
		if sel == nil {
			return nil // backed out
		}
		levelID = sel.LevelID
	}

	_, err = playGame(gameID, levelID, store, cfg)
	return err
}

// playGame runs one game in the terminal. It returns true when the player
// left with Back.
func playGame(gameID, levelID string, store *storage.Store, cfg core.RuntimeConfig) (bool, error) {
	qube.SetStartLevel(levelID)

	game, err := registry.Create(gameID)
	if err != nil {
		return false, fmt.Errorf("creating game: %w", err)
	}

	logger.Debug("starting game", "game", gameID, "level", levelID)
	back, err := tui.Run(game, store, cfg, tui.WithLogger(logger))
	if err != nil {
		return false, fmt.Errorf("running game: %w", err)
	}
	return back, nil
}
