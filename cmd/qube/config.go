package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/qube-arcade/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [mode]",
	Short: "Print the default game config",
	Long: `Print the built-in config YAML for a mode (default: play).

Save it as ~/.qube/configs/qube.yaml, or anywhere and pass --config, to
change roll speed, scoring or difficulty.

Examples:
  qube config > ~/.qube/configs/qube.yaml
  qube config static`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	gameID, err := resolveMode(arg)
	if err != nil {
		return err
	}

	data := config.GetDefaultYAML(gameID)
	if data == nil {
		return fmt.Errorf("no default config for %s", gameID)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
