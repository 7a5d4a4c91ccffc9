// Package config loads the YAML game settings and the environment-driven
// server settings.
package config

import (
	"fmt"
	"strings"
	"time"
)

// CookiesConfig contains all configuration for the cookie board.
type CookiesConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Rules  RulesConfig  `yaml:"rules"`
	Timing TimingConfig `yaml:"timing"`
}

// BoardConfig defines the grid shape and palette.
type BoardConfig struct {
	Size  int `yaml:"size"`  // Side length of the square grid
	Kinds int `yaml:"kinds"` // Number of distinct cookie kinds in play
}

// RulesConfig defines the move budget and scoring.
type RulesConfig struct {
	Moves           int `yaml:"moves"`
	PointsPerCookie int `yaml:"points_per_cookie"`
	MaxCascadeSteps int `yaml:"max_cascade_steps"`
}

// TimingConfig defines how long each cascade frame stays on screen.
type TimingConfig struct {
	SwapDelay  time.Duration `yaml:"swap_delay"`  // After a swap, before matching
	PhaseDelay time.Duration `yaml:"phase_delay"` // Matched cookies shown before they drop
	StepDelay  time.Duration `yaml:"step_delay"`  // Between cascade steps
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value to a preset. The empty string is normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// KindsForPreset returns the palette size for a difficulty preset.
// Fewer kinds make matches and chains more likely.
func KindsForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 4
	case DifficultyHard:
		return 6
	default:
		return 5
	}
}

// ApplyCookiesPreset modifies the config based on a difficulty preset.
func ApplyCookiesPreset(cfg *CookiesConfig, preset DifficultyPreset) {
	cfg.Board.Kinds = KindsForPreset(preset)
}
