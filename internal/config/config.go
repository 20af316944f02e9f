// Package config provides YAML-based game configuration loading and
// difficulty management for the Qube games.
package config

import (
	"errors"
	"fmt"
)

// QubeConfig contains all configuration for the Qube puzzle game.
type QubeConfig struct {
	Timing     QubeTiming       `yaml:"timing"`
	Scoring    QubeScoring      `yaml:"scoring"`
	Stage      QubeStage        `yaml:"stage"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// QubeTiming defines how fast the puzzle rolls, in simulation ticks.
type QubeTiming struct {
	RollTicks       int `yaml:"roll_ticks"`        // Ticks between rolls at the lowest difficulty
	MinRollTicks    int `yaml:"min_roll_ticks"`    // Fastest allowed roll interval
	LevelClearTicks int `yaml:"level_clear_ticks"` // Pause between puzzles
}

// QubeScoring defines points awarded and taken.
type QubeScoring struct {
	NormalPoints     int `yaml:"normal_points"`
	ForbiddenPenalty int `yaml:"forbidden_penalty"`
	PerfectBonus     int `yaml:"perfect_bonus"`
}

// QubeStage defines the stage the puzzle rolls over.
type QubeStage struct {
	MinRows int `yaml:"min_rows"` // Fewer rows than this ends the game
}

// Validate reports the first invalid value in the config.
func (c QubeConfig) Validate() error {
	switch {
	case c.Timing.RollTicks <= 0:
		return errors.New("config: timing.roll_ticks must be positive")
	case c.Timing.MinRollTicks <= 0:
		return errors.New("config: timing.min_roll_ticks must be positive")
	case c.Timing.MinRollTicks > c.Timing.RollTicks:
		return fmt.Errorf("config: timing.min_roll_ticks (%d) exceeds roll_ticks (%d)",
			c.Timing.MinRollTicks, c.Timing.RollTicks)
	case c.Timing.LevelClearTicks < 0:
		return errors.New("config: timing.level_clear_ticks must not be negative")
	case c.Scoring.NormalPoints < 0, c.Scoring.ForbiddenPenalty < 0, c.Scoring.PerfectBonus < 0:
		return errors.New("config: scoring values must not be negative")
	case c.Stage.MinRows < 1:
		return errors.New("config: stage.min_rows must be at least 1")
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to roll speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. An empty string means
// no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
