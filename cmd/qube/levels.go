package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/qube-arcade/internal/games/qube"
	"github.com/vovakirdan/qube-arcade/internal/games/qube/levels"
)

var flagExportOut string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Inspect and check level files",
	Long: `Work with level files.

A text level has one puzzle row per line, each a run of digits:
  0 = normal cube, 1 = forbidden cube, 2 = advantage cube
All rows must have the same width, at most the stage width.
YAML levels carry the same rows plus an id, name and metadata.`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the levels in use",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		lv := qube.Levels()
		fmt.Printf("  %-3s  %-18s  %-20s  %-5s  %s\n", "#", "ID", "Name", "Size", "Cubes")
		for i, l := range lv {
			p := l.Puzzle
			cubes := p.Count(levels.CellNormal) + p.Count(levels.CellForbidden) + p.Count(levels.CellAdvantage)
			fmt.Printf("  %-3d  %-18s  %-20s  %dx%-3d  %d\n", i+1, l.ID, l.Name, p.Cols(), p.Rows(), cubes)
		}
	},
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check that level files parse",
	Long: `Parse each file and report the first problem found in it.
Exits non-zero if any file is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLevelsValidate,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Print a level in YAML form",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsExport,
}

func init() {
	levelsExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Write to a file instead of stdout")

	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsValidateCmd)
	levelsCmd.AddCommand(levelsExportCmd)
}

func runLevelsValidate(_ *cobra.Command, args []string) error {
	bad := 0
	for _, file := range args {
		lvl, err := levels.NewLoader(filepath.Dir(file)).LoadFile(filepath.Base(file))
		if err != nil {
			bad++
			fmt.Printf("FAIL  %s: %v\n", file, err)
			continue
		}
		fmt.Printf("ok    %s (%s, %dx%d)\n", file, lvl.ID, lvl.Puzzle.Cols(), lvl.Puzzle.Rows())
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d level files invalid", bad, len(args))
	}
	return nil
}

func runLevelsExport(_ *cobra.Command, args []string) error {
	lvl, err := levels.Find(qube.Levels(), args[0])
	if err != nil {
		return err
	}
	data, err := levels.MarshalYAML(lvl)
	if err != nil {
		return err
	}

	if flagExportOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(flagExportOut, data, 0o644)
}
