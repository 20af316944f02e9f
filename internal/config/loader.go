package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadQube loads the Qube configuration.
// Search order: customPath -> ~/.qube/configs/qube.yaml -> ./configs/qube.yaml -> embedded default
func LoadQube(customPath string) (QubeConfig, error) {
	// Unset keys keep their defaults
	cfg := DefaultQubeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("qube.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "qube.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultQubeYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultQubeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing or invalid files are skipped.
func tryLoad(path string) (QubeConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return QubeConfig{}, false
	}
	cfg := DefaultQubeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return QubeConfig{}, false
	}
	if cfg.Validate() != nil {
		return QubeConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".qube", "configs", filename)
}

// ApplyQubePreset modifies the config based on a difficulty preset.
func ApplyQubePreset(cfg *QubeConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust stage tolerance based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Stage.MinRows = max(1, cfg.Stage.MinRows-2)
		cfg.Timing.RollTicks += cfg.Timing.RollTicks / 2
	case DifficultyHard:
		cfg.Stage.MinRows += 2
		cfg.Timing.RollTicks = max(cfg.Timing.MinRollTicks, cfg.Timing.RollTicks*2/3)
	}
}
