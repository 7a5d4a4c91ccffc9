package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// Phase is the turn controller state.
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseAwaitingSecondTap Phase = "awaiting_second_tap"
	PhaseResolving         Phase = "resolving"
	PhaseGameOver          Phase = "game_over"
)

// AcceptsInput reports whether taps are processed in this phase.
func (p Phase) AcceptsInput() bool {
	return p == PhaseIdle || p == PhaseAwaitingSecondTap
}

// State is a copy of the session state.
type State struct {
	Phase          Phase
	Score          int
	MovesRemaining int
	// Moves counts the swaps accepted since the game started.
	Moves     int
	Selection *Pos
	// Fault is the invariant violation that ended the game, if any.
	Fault error
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock SelectCell sleeps on. The default is NoDelay.
func WithClock(c Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// Session is one player's game: the grid, the turn state machine and the
// in-flight cascade. It is not safe for concurrent use.
type Session struct {
	cfg     Config
	factory Factory
	clock   Clock

	grid    *Grid
	state   State
	cascade *Cascade
	queued  []Frame
	games   int

	subs   map[int]func(Frame)
	nextID int
}

// NewSession validates cfg and starts the first game. A nil factory draws
// kinds from a time-seeded source.
func NewSession(cfg Config, f Factory, opts ...Option) (*Session, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if f == nil {
		f = NewRandomFactory(rand.New(rand.NewSource(time.Now().UnixNano())), cfg.Kinds)
	}
	s := &Session{
		cfg:     cfg,
		factory: f,
		clock:   NoDelay{},
		subs:    make(map[int]func(Frame)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, _, err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// StartGame creates a session with the given board size and move budget and
// returns it with its initial state and grid.
func StartGame(size, moves int, f Factory, opts ...Option) (*Session, State, Snapshot, error) {
	cfg := DefaultConfig()
	cfg.Size = size
	cfg.Moves = moves
	s, err := NewSession(cfg, f, opts...)
	if err != nil {
		return nil, State{}, Snapshot{}, err
	}
	return s, s.State(), s.Snapshot(), nil
}

// Restart discards the current game, including any in-flight cascade, and
// starts a new one with a fresh grid.
func (s *Session) Restart() (State, Snapshot, error) {
	g, err := NewGrid(s.cfg.Size, s.factory)
	if err != nil {
		return State{}, Snapshot{}, err
	}
	s.grid = g
	s.cascade = nil
	s.queued = nil
	s.state = State{Phase: PhaseIdle, MovesRemaining: s.cfg.Moves}
	s.games++
	return s.State(), s.Snapshot(), nil
}

// UseGrid replaces the board of a fresh game with g. It is meant for
// scripted setups and fails once a move has been made.
func (s *Session) UseGrid(g *Grid) error {
	if s.state.Moves > 0 || s.state.Phase != PhaseIdle {
		return fmt.Errorf("engine: use grid after play started: %w", ErrInvalidConfig)
	}
	if g.Size() != s.cfg.Size {
		return fmt.Errorf("engine: grid size %d, want %d: %w", g.Size(), s.cfg.Size, ErrInvalidConfig)
	}
	if err := g.Validate(); err != nil {
		return err
	}
	s.grid = g
	return nil
}

// Config returns the defaulted session config.
func (s *Session) Config() Config {
	return s.cfg
}

// State returns a copy of the current state.
func (s *Session) State() State {
	st := s.state
	if st.Selection != nil {
		sel := *st.Selection
		st.Selection = &sel
	}
	return st
}

// Snapshot returns a copy of the current grid.
func (s *Session) Snapshot() Snapshot {
	return s.grid.Snapshot()
}

// Tap feeds one cell selection to the turn controller. Taps while resolving
// or after the game ended are ignored. An accepted adjacent swap costs a move
// whether or not it matches, and queues the swap frame for Advance.
func (s *Session) Tap(p Pos) (State, error) {
	if !s.grid.InBounds(p) {
		return s.State(), fmt.Errorf("engine: tap %v: %w", p, ErrInvalidPosition)
	}
	switch s.state.Phase {
	case PhaseIdle:
		s.state.Selection = &p
		s.state.Phase = PhaseAwaitingSecondTap
	case PhaseAwaitingSecondTap:
		sel := *s.state.Selection
		switch {
		case sel == p:
			s.state.Selection = nil
			s.state.Phase = PhaseIdle
		case sel.Adjacent(p):
			if err := s.grid.Swap(sel, p); err != nil {
				s.abort(err)
				return s.State(), err
			}
			s.state.Selection = nil
			s.state.MovesRemaining--
			s.state.Moves++
			s.state.Phase = PhaseResolving
			s.cascade = s.cfg.Resolver().Start(s.grid)
			s.queued = append(s.queued[:0], Frame{
				Phase: FrameSwapped,
				Grid:  s.grid.Snapshot(),
				Delay: s.cfg.SwapDelay,
			})
		default:
			s.state.Selection = &p
		}
	}
	return s.State(), nil
}

// ClearSelection drops a pending first tap.
func (s *Session) ClearSelection() State {
	if s.state.Phase == PhaseAwaitingSecondTap {
		s.state.Selection = nil
		s.state.Phase = PhaseIdle
	}
	return s.State()
}

// Advance produces the next frame of the resolving turn and publishes it to
// subscribers. On the settled frame the score is updated and the session
// returns to idle, or to game over when no moves remain. It returns false when
// nothing is resolving. An error means the game was aborted.
func (s *Session) Advance() (Frame, bool, error) {
	if s.state.Phase != PhaseResolving {
		return Frame{}, false, nil
	}
	if len(s.queued) > 0 {
		f := s.queued[0]
		s.queued = s.queued[1:]
		s.publish(f)
		return f, true, nil
	}
	f, ok, err := s.cascade.Next()
	if err != nil {
		s.abort(err)
		return Frame{}, false, err
	}
	if !ok {
		err := fmt.Errorf("engine: cascade ended without settling: %w", ErrInvariantViolation)
		s.abort(err)
		return Frame{}, false, err
	}
	if f.Phase == FrameSettled {
		s.state.Score += f.ScoreDelta
		s.cascade = nil
		if s.state.MovesRemaining <= 0 {
			s.state.MovesRemaining = 0
			s.state.Phase = PhaseGameOver
		} else {
			s.state.Phase = PhaseIdle
		}
	}
	s.publish(f)
	return f, true, nil
}

// SelectCell taps p and, when the tap started a turn, runs its cascade to
// completion, sleeping each frame's delay on the session clock.
func (s *Session) SelectCell(p Pos) (State, error) {
	if _, err := s.Tap(p); err != nil {
		return s.State(), err
	}
	game := s.games
	for s.state.Phase == PhaseResolving && s.games == game {
		f, ok, err := s.Advance()
		if err != nil {
			return s.State(), err
		}
		if !ok {
			break
		}
		if f.Delay > 0 && s.games == game {
			s.clock.Sleep(f.Delay)
		}
	}
	return s.State(), nil
}

// Hint returns a swap that would produce a match, if one exists.
func (s *Session) Hint() (Swap, bool) {
	if !s.state.Phase.AcceptsInput() {
		return Swap{}, false
	}
	swaps := FindSwaps(s.grid)
	if len(swaps) == 0 {
		return Swap{}, false
	}
	return swaps[0], true
}

// Subscribe registers fn to receive every frame produced while turns resolve.
// The returned function removes the subscription.
func (s *Session) Subscribe(fn func(Frame)) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		delete(s.subs, id)
	}
}

func (s *Session) publish(f Frame) {
	if len(s.subs) == 0 {
		return
	}
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := s.subs[id]; ok {
			fn(f)
		}
	}
}

// abort ends the game after an invariant violation.
func (s *Session) abort(err error) {
	s.cascade = nil
	s.queued = nil
	s.state.Selection = nil
	s.state.Phase = PhaseGameOver
	s.state.Fault = err
}
