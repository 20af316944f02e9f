package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/qube-arcade/internal/games/qube"
	"github.com/vovakirdan/qube-arcade/internal/registry"
	"github.com/vovakirdan/qube-arcade/internal/storage"
)

var (
	flagByLevel bool
	flagClear   bool
	flagSummary bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a mode (default: play), or the best
result on each level with --by-level.

--summary prints one line per mode that has scores. --clear deletes the
scores and puzzle results of the mode; other modes keep theirs.

Examples:
  qube scores
  qube scores --by-level
  qube scores --summary
  qube scores static --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagByLevel, "by-level", false, "Show best result per level")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and puzzle results of the mode")
	scoresCmd.Flags().BoolVar(&flagSummary, "summary", false, "Show stats for every mode")
}

func runScores(_ *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	gameID, err := resolveMode(arg)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		return clearMode(store, gameID, game.Title())
	case flagSummary:
		return printSummary(store)
	case flagByLevel:
		return printLevelBests(store, gameID, game.Title())
	default:
		return printTopScores(store, gameID, game.Title())
	}
}

func clearMode(store *storage.Store, gameID, title string) error {
	if err := store.ClearScores(gameID); err != nil {
		return err
	}
	if err := store.ClearLevelResults(gameID); err != nil {
		return err
	}
	fmt.Printf("Cleared scores and puzzle results for %s\n", title)
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-14s  %-8s  %-6s  %s\n", "Mode", "Best", "Games", "Average")
	fmt.Printf("  %-14s  %-8s  %-6s  %s\n", "----", "----", "-----", "-------")
	for _, info := range registry.List() {
		st, ok := stats[info.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-14s  %-8d  %-6d  %.0f\n", info.ID, st.HighScore, st.GamesCount, st.AvgScore)
	}
	return nil
}

func printTopScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'qube play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func printLevelBests(store *storage.Store, gameID, title string) error {
	best, err := store.BestLevelResults(gameID)
	if err != nil {
		return fmt.Errorf("retrieving level results: %w", err)
	}

	fmt.Printf("Puzzle Bests - %s\n", title)
	fmt.Println()

	if len(best) == 0 {
		fmt.Println("No puzzles finished yet.")
		return nil
	}

	fmt.Printf("  %-20s  %-8s  %-6s  %s\n", "Level", "Best", "Tries", "Perfect")
	fmt.Printf("  %-20s  %-8s  %-6s  %s\n", "-----", "----", "-----", "-------")
	for _, lvl := range qube.Levels() {
		b, ok := best[lvl.ID]
		if !ok {
			fmt.Printf("  %-20s  %-8s  %-6s  %s\n", lvl.Title(), "-", "0", "-")
			continue
		}
		fmt.Printf("  %-20s  %-8d  %-6d  %d\n", lvl.Title(), b.BestScore, b.Attempts, b.Perfects)
	}
	return nil
}
