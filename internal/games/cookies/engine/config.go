package engine

import (
	"fmt"
	"time"
)

// Defaults used for zero Config fields.
const (
	DefaultSize           = 6
	DefaultKinds          = 5
	DefaultMoves          = 30
	DefaultPointsPerToken = 10
	DefaultPhaseDelay     = 300 * time.Millisecond
	DefaultStepDelay      = 100 * time.Millisecond
	DefaultSwapDelay      = 100 * time.Millisecond
	DefaultMaxSteps       = 1000
)

// MinKinds is the smallest palette that still plays as a match-3 game.
const MinKinds = 4

// Config holds the settings of a session. Zero fields take their defaults.
type Config struct {
	Size           int
	Kinds          int
	Moves          int
	PointsPerToken int
	PhaseDelay     time.Duration
	StepDelay      time.Duration
	SwapDelay      time.Duration
	MaxSteps       int
}

// DefaultConfig returns the classic 6x6, 30 move game.
func DefaultConfig() Config {
	return Config{
		Size:           DefaultSize,
		Kinds:          DefaultKinds,
		Moves:          DefaultMoves,
		PointsPerToken: DefaultPointsPerToken,
		PhaseDelay:     DefaultPhaseDelay,
		StepDelay:      DefaultStepDelay,
		SwapDelay:      DefaultSwapDelay,
		MaxSteps:       DefaultMaxSteps,
	}
}

// WithDefaults returns c with every zero field replaced by its default.
// Delays are kept when negative so callers can disable them with -1.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Size == 0 {
		c.Size = d.Size
	}
	if c.Kinds == 0 {
		c.Kinds = d.Kinds
	}
	if c.Moves == 0 {
		c.Moves = d.Moves
	}
	if c.PointsPerToken == 0 {
		c.PointsPerToken = d.PointsPerToken
	}
	if c.PhaseDelay == 0 {
		c.PhaseDelay = d.PhaseDelay
	}
	if c.StepDelay == 0 {
		c.StepDelay = d.StepDelay
	}
	if c.SwapDelay == 0 {
		c.SwapDelay = d.SwapDelay
	}
	if c.MaxSteps == 0 {
		c.MaxSteps = d.MaxSteps
	}
	if c.PhaseDelay < 0 {
		c.PhaseDelay = 0
	}
	if c.StepDelay < 0 {
		c.StepDelay = 0
	}
	if c.SwapDelay < 0 {
		c.SwapDelay = 0
	}
	return c
}

// Validate checks the ranges of a defaulted config.
func (c Config) Validate() error {
	switch {
	case c.Size < MinSize || c.Size > MaxSize:
		return fmt.Errorf("engine: size %d outside [%d, %d]: %w", c.Size, MinSize, MaxSize, ErrInvalidConfig)
	case c.Kinds < MinKinds || c.Kinds > MaxKinds:
		return fmt.Errorf("engine: kinds %d outside [%d, %d]: %w", c.Kinds, MinKinds, MaxKinds, ErrInvalidConfig)
	case c.Moves < 1:
		return fmt.Errorf("engine: moves %d must be positive: %w", c.Moves, ErrInvalidConfig)
	case c.PointsPerToken < 1:
		return fmt.Errorf("engine: points per token %d must be positive: %w", c.PointsPerToken, ErrInvalidConfig)
	case c.MaxSteps < 1:
		return fmt.Errorf("engine: max steps %d must be positive: %w", c.MaxSteps, ErrInvalidConfig)
	}
	return nil
}

// Resolver returns the cascade parameters of c.
func (c Config) Resolver() Resolver {
	return Resolver{
		PointsPerToken: c.PointsPerToken,
		PhaseDelay:     c.PhaseDelay,
		StepDelay:      c.StepDelay,
		MaxSteps:       c.MaxSteps,
	}
}
