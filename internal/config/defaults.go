package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/cookies.yaml
var defaultCookiesYAML []byte

// DefaultCookiesConfig returns the classic 6x6, 30 move configuration.
func DefaultCookiesConfig() CookiesConfig {
	return CookiesConfig{
		Board: BoardConfig{
			Size:  6,
			Kinds: 5,
		},
		Rules: RulesConfig{
			Moves:           30,
			PointsPerCookie: 10,
			MaxCascadeSteps: 1000,
		},
		Timing: TimingConfig{
			SwapDelay:  100 * time.Millisecond,
			PhaseDelay: 300 * time.Millisecond,
			StepDelay:  100 * time.Millisecond,
		},
	}
}
