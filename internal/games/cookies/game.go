// Package cookies adapts the match-3 engine to the terminal platform: cursor
// and mouse input, tick-paced cascade playback and rendering into a screen.
package cookies

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cookie-crush/internal/config"
	"github.com/vovakirdan/cookie-crush/internal/core"
	"github.com/vovakirdan/cookie-crush/internal/games/cookies/engine"
	"github.com/vovakirdan/cookie-crush/internal/registry"
)

const (
	hintDuration  = 2 * time.Second
	popupDuration = time.Second
)

var logger = log.New(io.Discard)

// SetLogger sets the logger used by every game instance.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	for _, p := range Presets {
		p := p
		registry.Register(p.ID, func() registry.Game {
			return New(p)
		})
	}
}

// Game is one cookie board bound to a preset.
type Game struct {
	preset  Preset
	cfg     engine.Config
	runtime core.RuntimeConfig
	session *engine.Session
	factory engine.Factory
	cancel  func()
	tick    uint64

	cursor engine.Pos
	paused bool

	// wait counts the ticks left before the next cascade frame.
	wait  int
	frame engine.Frame

	hint      *engine.Swap
	hintTicks int

	popup      int
	popupTicks int

	bestChain int
	layout    layout
}

// New creates a game for the given preset.
func New(p Preset) *Game {
	return &Game{preset: p}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.preset.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Cookie Crush: " + g.preset.Title
}

// Description returns the preset summary shown in listings.
func (g *Game) Description() string {
	return g.preset.Description
}

// Reset starts a new board. The random source is seeded from cfg.Seed so a
// seed always deals the same boards.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.tick = 0
	g.paused = false
	g.bestChain = 0

	settings, err := config.LoadCookies(configPath)
	if err != nil {
		logger.Warn("using default board config", "err", err)
		settings = config.DefaultCookiesConfig()
	}
	g.cfg = EngineConfig(settings, g.preset)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g.factory = engine.NewRandomFactory(rng, g.cfg.Kinds)
	session, err := engine.NewSession(g.cfg, g.factory)
	if err != nil {
		logger.Error("invalid board config, falling back to defaults", "err", err, "preset", g.preset.ID)
		g.cfg = engine.DefaultConfig()
		g.factory = engine.NewRandomFactory(rng, g.cfg.Kinds)
		session, _ = engine.NewSession(g.cfg, g.factory)
	}
	g.attach(session)
	g.useStartBoard()
	g.startBoard()
	g.layout = computeLayout(cfg.ScreenW, cfg.ScreenH, g.cfg.Size)

	logger.Info("game started", "preset", g.preset.ID, "size", g.cfg.Size, "kinds", g.cfg.Kinds, "moves", g.cfg.Moves, "seed", seed)
}

func (g *Game) attach(s *engine.Session) {
	if g.cancel != nil {
		g.cancel()
	}
	g.session = s
	g.cancel = s.Subscribe(g.onFrame)
}

// startBoard clears the per-board UI state.
func (g *Game) startBoard() {
	g.cursor = engine.Pos{Row: g.cfg.Size / 2, Col: g.cfg.Size / 2}
	g.wait = 0
	g.frame = engine.Frame{}
	g.hint = nil
	g.hintTicks = 0
	g.popup = 0
	g.popupTicks = 0
}

// useStartBoard swaps the dealt board for the scripted one, if any.
func (g *Game) useStartBoard() {
	if startBoard == nil {
		return
	}
	grid, err := startBoard.Grid(g.factory)
	if err == nil {
		err = g.session.UseGrid(grid)
	}
	if err != nil {
		logger.Warn("keeping random board", "board", startBoard.ID, "err", err)
		return
	}
	logger.Debug("scripted board", "board", startBoard.ID)
}

// Resize updates the layout for a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.layout = computeLayout(w, h, g.cfg.Size)
}

func (g *Game) onFrame(f engine.Frame) {
	switch f.Phase {
	case engine.FrameMarked:
		logger.Debug("cookies matched", "step", f.Step, "count", len(f.Matched), "delta", f.ScoreDelta)
	case engine.FrameSettled:
		logger.Debug("turn settled", "steps", f.Step, "delta", f.ScoreDelta)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if g.layout.tooSmall {
		return core.StepResult{State: g.State()}
	}

	st := g.session.State()
	if in.Has(core.ActionPause) && st.Phase != engine.PhaseGameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if st.Phase != engine.PhaseGameOver {
		g.handleInput(in)
	}

	if g.session.State().Phase == engine.PhaseResolving {
		if g.wait > 0 {
			g.wait--
		}
		if g.wait == 0 {
			g.advance()
		}
	}

	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = nil
		}
	}
	if g.popupTicks > 0 {
		g.popupTicks--
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	last := g.cfg.Size - 1
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, last)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, last)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, last)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, last)
	}

	if in.Tap != nil {
		if p, ok := g.layout.cellAt(in.Tap.X, in.Tap.Y); ok {
			g.cursor = p
			g.tap(p)
		}
	}
	if in.Has(core.ActionSelect) {
		g.tap(g.cursor)
	}
	if in.Has(core.ActionCancel) {
		g.session.ClearSelection()
		g.hint = nil
	}
	if in.Has(core.ActionHint) {
		if sw, ok := g.session.Hint(); ok {
			g.hint = &sw
			g.hintTicks = g.runtime.TicksFor(hintDuration)
		}
	}
}

func (g *Game) tap(p engine.Pos) {
	st, err := g.session.Tap(p)
	if err != nil {
		logger.Debug("tap rejected", "pos", p.String(), "err", err)
		return
	}
	if st.Phase == engine.PhaseResolving {
		g.hint = nil
		g.hintTicks = 0
		g.wait = 0
	}
}

// advance pulls the next cascade frame and schedules the one after it.
func (g *Game) advance() {
	f, ok, err := g.session.Advance()
	if err != nil {
		logger.Error("board aborted", "preset", g.preset.ID, "err", err)
		return
	}
	if !ok {
		return
	}
	g.frame = f
	g.wait = g.runtime.TicksFor(f.Delay)

	if f.Phase != engine.FrameSettled {
		return
	}
	if f.ScoreDelta > 0 {
		g.popup = f.ScoreDelta
		g.popupTicks = g.runtime.TicksFor(popupDuration)
	}
	if f.Step > g.bestChain {
		g.bestChain = f.Step
	}
	if st := g.session.State(); st.Phase == engine.PhaseGameOver {
		logger.Info("game over", "preset", g.preset.ID, "score", st.Score, "moves", st.Moves, "best_chain", g.bestChain)
	}
}

// restart deals a new board at any time, abandoning a running cascade.
func (g *Game) restart() {
	if _, _, err := g.session.Restart(); err != nil {
		logger.Error("restart failed", "err", err)
		return
	}
	g.useStartBoard()
	g.paused = false
	g.bestChain = 0
	g.startBoard()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.session.State()
	return core.GameState{
		Score:    st.Score,
		GameOver: st.Phase == engine.PhaseGameOver,
		Paused:   g.paused || g.layout.tooSmall,
	}
}

// Session exposes the engine session, for callers that need the raw state.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/HJKL: Move | Space: Select | ?: Hint | Esc: Cancel | P: Pause | R: New board | Q: Quit"
}

// Moves returns the number of swaps made in the current game.
func (g *Game) Moves() int {
	return g.session.State().Moves
}

// BestChain returns the longest cascade of the current board, in steps.
func (g *Game) BestChain() int {
	return g.bestChain
}
