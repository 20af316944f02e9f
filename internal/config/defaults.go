package config

import (
	_ "embed"
)

//go:embed defaults/qube.yaml
var defaultQubeYAML []byte

// DefaultQubeConfig returns the hardcoded Qube configuration.
func DefaultQubeConfig() QubeConfig {
	return QubeConfig{
		Timing: QubeTiming{
			RollTicks:       45, // 0.75s per row at 60fps
			MinRollTicks:    15,
			LevelClearTicks: 90,
		},
		Scoring: QubeScoring{
			NormalPoints:     100,
			ForbiddenPenalty: 300,
			PerfectBonus:     1000,
		},
		Stage: QubeStage{
			MinRows: 4,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 10000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "qube", "qube_static", "qube_grid":
		return defaultQubeYAML
	default:
		return nil
	}
}
