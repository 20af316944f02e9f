// qube is an Intelligent Qube style puzzle game for the terminal.
//
// Usage:
//
//	qube list                 - List game modes
//	qube play [mode]          - Play a mode (play, static, grid)
//	qube menu                 - Pick modes from an interactive menu
//	qube serve                - Serve the game over SSH
//	qube scores [mode]        - Show high scores
//	qube levels list          - List levels
//	qube levels validate <f>  - Check level files
//	qube levels export <id>   - Print a level as YAML
//	qube window [mode]        - Play in a desktop window (ebiten builds)
//	qube config [mode]        - Print the default config YAML
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed
//	--db <path>          - Set database path (default: ~/.qube/scores.db)
//	--level-dir <dir>    - Load levels from a directory instead of the built-in set
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register game modes
	_ "github.com/vovakirdan/qube-arcade/internal/games/qube"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLevelDir   string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "qube",
	Short: "Qube - a falling block puzzle for your terminal",
	Long: `Qube is a puzzle game in the spirit of Intelligent Qube. Rows of cubes
roll down a narrow stage towards you. Mark a cell, wait for a cube to roll
onto it and detonate the mark to capture the cube. Let normal cubes escape
or capture forbidden ones and the stage loses rows.

Level files are plain text, one puzzle row per line:
  0 = normal cube, 1 = forbidden cube, 2 = advantage cube

Examples:
  qube play
  qube play static
  qube play --level 03-advantage --difficulty hard
  qube menu --level-dir ./my-levels
  qube serve --ssh :2222
  qube levels validate ./my-levels/*.txt`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.qube/scores.db", "Path to scores database")
	pf.StringVar(&flagLevelDir, "level-dir", "", "Directory of level files (default: built-in levels)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(configCmd)
}
