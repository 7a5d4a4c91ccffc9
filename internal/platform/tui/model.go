package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/cookie-crush/internal/config"
	"github.com/vovakirdan/cookie-crush/internal/core"
	"github.com/vovakirdan/cookie-crush/internal/registry"
	"github.com/vovakirdan/cookie-crush/internal/storage"
)

// helpHeight is the number of rows kept below the game for the key help.
const helpHeight = 1

// resizer is implemented by games that can follow a window resize without
// starting over.
type resizer interface {
	Resize(w, h int)
}

// moveCounter is implemented by games that report how many moves were made.
type moveCounter interface {
	Moves() int
}

// chainCounter is implemented by games that track their longest cascade.
type chainCounter interface {
	BestChain() int
}

// GameModel runs one game: it collects input between ticks, steps the game
// and records the result once it is over. It is used both by the local CLI
// and inside SSH sessions.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	player     string
	runID      uuid.UUID
	inputFrame core.InputFrame
	gameState  core.GameState
	status     string
	standalone bool
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithPlayer sets the name recorded with results.
func WithPlayer(name string) GameOption {
	return func(m *GameModel) {
		m.player = name
	}
}

// WithLogger sets the logger for results and errors.
func WithLogger(l *log.Logger) GameOption {
	return func(m *GameModel) {
		if l != nil {
			m.logger = l
		}
	}
}

// Standalone makes "back to menu" quit the program.
func Standalone() GameOption {
	return func(m *GameModel) {
		m.standalone = true
	}
}

// NewGameModel creates a model for the given game. A nil store disables
// result saving.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		game:       game,
		store:      store,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		logger:     log.New(io.Discard),
		player:     "local",
		runID:      uuid.New(),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.playHeight())
	return m
}

// playHeight is the screen height left for the game.
func (m GameModel) playHeight() int {
	return max(m.config.ScreenH-helpHeight, 1)
}

// gameConfig returns the runtime config as seen by the game.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = m.playHeight()
	return cfg
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse turns a left click into a tap on the screen cell.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.inputFrame.SetTap(msg.X, msg.Y)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, m.playHeight())
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, m.playHeight())
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.runID = uuid.New()
		m.scoreSaved = false
		m.status = ""
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult()
		m.scoreSaved = true
	}

	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// saveResult records the finished game. Failures are logged, play goes on.
func (m *GameModel) saveResult() {
	res := storage.GameResult{
		RunID:  m.runID,
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.gameState.Score,
	}
	if mc, ok := m.game.(moveCounter); ok {
		res.Moves = mc.Moves()
	}
	if cc, ok := m.game.(chainCounter); ok {
		res.BestChain = cc.BestChain()
	}

	m.logger.Info("game finished",
		"game", res.GameID,
		"player", res.Player,
		"score", res.Score,
		"moves", res.Moves,
		"best_chain", res.BestChain,
		"run", res.RunID,
	)

	if m.store == nil || res.Score <= 0 {
		return
	}
	if _, err := m.store.SaveResult(res); err != nil {
		m.logger.Error("could not save result", "game", res.GameID, "err", err)
	}
}

// saveScreenshot writes the current screen to ~/.cookies/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.DataPath("screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "screenshot failed"
		m.logger.Error("could not create screenshot directory", "dir", dir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed"
		m.logger.Error("could not save screenshot", "path", path, "err", err)
		return
	}
	m.status = "saved " + path
}

// View renders the game and the help line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	line := m.help.View(m.keys)
	if m.status != "" {
		line = m.status
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(line)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the local terminal until the player quits or goes
// back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) error {
	model := NewGameModel(game, store, cfg, append(opts, Standalone())...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
