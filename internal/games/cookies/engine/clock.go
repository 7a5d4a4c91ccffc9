package engine

import "time"

// Clock provides the pauses between cascade frames.
type Clock interface {
	Sleep(d time.Duration)
}

// RealClock sleeps on the wall clock.
type RealClock struct{}

// Sleep blocks for d.
func (RealClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// NoDelay is a Clock that never waits. Used in tests and headless runs.
type NoDelay struct{}

// Sleep returns immediately.
func (NoDelay) Sleep(time.Duration) {}
