package cookies

import (
	"strings"

	"github.com/vovakirdan/cookie-crush/internal/games/cookies/engine"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StateIdle        GameStateType = "idle"
	StateSelecting   GameStateType = "selecting"
	StateResolving   GameStateType = "resolving"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Preset    string
	Score     int
	MovesLeft int
	Moves     int
	Cursor    engine.Pos
	Selection *engine.Pos
	BestChain int
	Board     []string // kind letters per row, marked cells lower case
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	st := g.session.State()

	state := StateIdle
	switch {
	case g.layout.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case st.Phase == engine.PhaseGameOver:
		state = StateGameOver
	case st.Phase == engine.PhaseResolving:
		state = StateResolving
	case st.Phase == engine.PhaseAwaitingSecondTap:
		state = StateSelecting
	}

	return Snapshot{
		Tick:      g.tick,
		Preset:    g.preset.ID,
		Score:     st.Score,
		MovesLeft: st.MovesRemaining,
		Moves:     st.Moves,
		Cursor:    g.cursor,
		Selection: st.Selection,
		BestChain: g.bestChain,
		Board:     strings.Split(g.session.Snapshot().String(), "\n"),
		State:     state,
	}
}
