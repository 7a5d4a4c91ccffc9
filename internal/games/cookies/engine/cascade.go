package engine

import (
	"fmt"
	"time"
)

// FramePhase identifies the point in a turn a frame was taken at.
type FramePhase string

const (
	FrameSwapped   FramePhase = "swapped"
	FrameMarked    FramePhase = "marked"
	FrameCompacted FramePhase = "compacted"
	FrameSettled   FramePhase = "settled"
)

// Frame is one snapshot emitted while a turn resolves.
type Frame struct {
	Phase FramePhase
	// Step is the 1-based resolution step; 0 for the swap frame.
	Step int
	Grid Snapshot
	// Matched holds the cells cleared in this step, sorted. Set on marked frames.
	Matched []Pos
	// ScoreDelta is the points gathered by the cascade so far.
	ScoreDelta int
	// Delay is how long the frame should stay on screen before the next one.
	Delay time.Duration
}

// Result is the outcome of a completed cascade.
type Result struct {
	Final      Snapshot
	ScoreDelta int
	Steps      int
}

// Resolver holds the cascade parameters.
type Resolver struct {
	PointsPerToken int
	PhaseDelay     time.Duration
	StepDelay      time.Duration
	MaxSteps       int
}

// DefaultResolver returns a resolver with the default scoring and timing.
func DefaultResolver() Resolver {
	return Resolver{
		PointsPerToken: DefaultPointsPerToken,
		PhaseDelay:     DefaultPhaseDelay,
		StepDelay:      DefaultStepDelay,
		MaxSteps:       DefaultMaxSteps,
	}
}

type cascadeStage int

const (
	stageDetect cascadeStage = iota
	stageCompact
	stageDone
)

// Cascade resolves a grid one frame at a time. It mutates the grid it was
// started on.
type Cascade struct {
	res   Resolver
	grid  *Grid
	stage cascadeStage
	steps int
	delta int
	err   error
}

// Start begins a cascade on g.
func (r Resolver) Start(g *Grid) *Cascade {
	if r.MaxSteps <= 0 {
		r.MaxSteps = DefaultMaxSteps
	}
	return &Cascade{res: r, grid: g}
}

// Next advances the cascade by one phase and returns the resulting frame.
// It returns false once the settled frame has been delivered. Any error is
// fatal and is returned again by every later call.
func (c *Cascade) Next() (Frame, bool, error) {
	if c.err != nil {
		return Frame{}, false, c.err
	}
	switch c.stage {
	case stageDetect:
		if c.steps == 0 {
			if err := c.grid.Validate(); err != nil {
				return c.fail(err)
			}
		}
		set := FindMatches(c.grid)
		if set.Len() == 0 {
			c.stage = stageDone
			return Frame{
				Phase:      FrameSettled,
				Step:       c.steps,
				Grid:       c.grid.Snapshot(),
				ScoreDelta: c.delta,
			}, true, nil
		}
		if c.steps >= c.res.MaxSteps {
			return c.fail(fmt.Errorf("engine: after %d steps: %w", c.steps, ErrCascadeLimit))
		}
		if err := c.grid.MarkMatched(set); err != nil {
			return c.fail(err)
		}
		c.steps++
		c.delta += set.Len() * c.res.PointsPerToken
		c.stage = stageCompact
		return Frame{
			Phase:      FrameMarked,
			Step:       c.steps,
			Grid:       c.grid.Snapshot(),
			Matched:    set.Sorted(),
			ScoreDelta: c.delta,
			Delay:      c.res.PhaseDelay,
		}, true, nil
	case stageCompact:
		for _, col := range c.grid.MarkedColumns() {
			if _, err := c.grid.CompactColumn(col); err != nil {
				return c.fail(err)
			}
		}
		if err := c.grid.Validate(); err != nil {
			return c.fail(err)
		}
		c.stage = stageDetect
		return Frame{
			Phase:      FrameCompacted,
			Step:       c.steps,
			Grid:       c.grid.Snapshot(),
			ScoreDelta: c.delta,
			Delay:      c.res.StepDelay,
		}, true, nil
	default:
		return Frame{}, false, nil
	}
}

func (c *Cascade) fail(err error) (Frame, bool, error) {
	c.err = err
	c.stage = stageDone
	return Frame{}, false, err
}

// Done reports whether the cascade has settled or failed.
func (c *Cascade) Done() bool {
	return c.stage == stageDone
}

// ScoreDelta returns the points gathered so far.
func (c *Cascade) ScoreDelta() int {
	return c.delta
}

// Steps returns the number of resolution steps taken so far.
func (c *Cascade) Steps() int {
	return c.steps
}

// Resolve runs a cascade on g to its fixed point, passing every frame to emit
// (which may be nil) and sleeping each frame's delay on clock.
func (r Resolver) Resolve(g *Grid, clock Clock, emit func(Frame)) (Result, error) {
	if clock == nil {
		clock = NoDelay{}
	}
	c := r.Start(g)
	for {
		f, ok, err := c.Next()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		if emit != nil {
			emit(f)
		}
		if f.Delay > 0 {
			clock.Sleep(f.Delay)
		}
	}
	return Result{Final: g.Snapshot(), ScoreDelta: c.delta, Steps: c.steps}, nil
}
