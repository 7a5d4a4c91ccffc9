package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPosition is returned for coordinates outside the grid.
	// The operation that returned it made no change.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvariantViolation reports corrupted engine state. It is fatal for the
	// current game: the session moves to game over and must be restarted.
	ErrInvariantViolation = errors.New("internal invariant violation")

	// ErrCascadeLimit is returned when a cascade exceeds its step cap.
	ErrCascadeLimit = fmt.Errorf("cascade step limit exceeded: %w", ErrInvariantViolation)

	// ErrInvalidConfig is returned for out-of-range session settings.
	ErrInvalidConfig = errors.New("invalid config")
)
