package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cookie-crush/internal/registry"
	"github.com/vovakirdan/cookie-crush/internal/storage"
)

const leaderboardSize = 100

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tabStyle        = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle  = tabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	statsStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	frameStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoresKeyMap holds the leaderboard bindings.
type ScoresKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevBoard key.Binding
	NextBoard key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoresKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevBoard, k.NextBoard, k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoresKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.PrevBoard, k.NextBoard}, {k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultScoresKeyMap returns the leaderboard bindings.
func DefaultScoresKeyMap() ScoresKeyMap {
	return ScoresKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		PrevBoard: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev board")),
		NextBoard: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next board")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type scoresExit int

const (
	scoresOpen scoresExit = iota
	scoresBack
	scoresQuit
)

// ScoreboardModel shows the best results of each board preset, one tab per preset.
type ScoreboardModel struct {
	boards  []registry.GameInfo
	current int

	store   *storage.Store
	stats   map[string]*storage.GameStats
	results []storage.ScoreEntry
	err     error

	table table.Model
	help  help.Model
	keys  ScoresKeyMap

	width, height int
	exit          scoresExit
}

// NewScoreboardModel opens the leaderboard on the first preset.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		boards: registry.List(),
		store:  store,
		stats:  map[string]*storage.GameStats{},
		help:   help.New(),
		keys:   DefaultScoresKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	if store != nil {
		if all, err := store.GetAllGamesStats(); err == nil {
			m.stats = all
		}
	}
	m.table = newScoresTable(width, height)
	m.load()
	return m
}

// newScoresTable sizes the columns to the window. Player gets the slack.
func newScoresTable(width, height int) table.Model {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Moves", Width: 5},
		{Title: "Chain", Width: 5},
		{Title: "Played", Width: 12},
	}
	used := 4 + 12 + 7 + 5 + 5 + 12 + 2*len(cols) + 4
	if slack := width - used; slack > 0 {
		cols[1].Width += min(slack, 16)
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).BorderBottom(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(false)
	t.SetStyles(st)
	return t
}

func (m ScoreboardModel) board() (registry.GameInfo, bool) {
	if len(m.boards) == 0 {
		return registry.GameInfo{}, false
	}
	return m.boards[m.current], true
}

// load fetches the results of the current board into the table.
func (m *ScoreboardModel) load() {
	m.results, m.err = nil, nil
	b, ok := m.board()
	if ok && m.store != nil {
		m.results, m.err = m.store.TopScores(b.ID, leaderboardSize)
	}

	rows := make([]table.Row, 0, len(m.results))
	for i, r := range m.results {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows = append(rows, table.Row{
			fmt.Sprint(i + 1),
			player,
			fmt.Sprint(r.Score),
			fmt.Sprint(r.Moves),
			fmt.Sprintf("x%d", r.BestChain),
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycle(step int) {
	if len(m.boards) == 0 {
		return
	}
	m.current = (m.current + step + len(m.boards)) % len(m.boards)
	m.load()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.exit = scoresQuit
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.exit = scoresBack
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextBoard):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevBoard):
			m.cycle(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoresTable(msg.Width, msg.Height)
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.exit != scoresOpen {
		return ""
	}

	sections := []string{
		boardTitleStyle.Render("LEADERBOARD"),
		m.tabs(),
		statsStyle.Render(m.statsLine()),
		frameStyle.Render(m.body()),
		hintStyle.Render(m.help.View(m.keys)),
	}
	page := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width <= 0 {
		return page
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, page)
}

// tabs renders one label per board, the current one highlighted.
func (m ScoreboardModel) tabs() string {
	labels := make([]string, len(m.boards))
	for i, b := range m.boards {
		style := tabStyle
		if i == m.current {
			style = activeTabStyle
		}
		labels[i] = style.Render(b.ID)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

func (m ScoreboardModel) statsLine() string {
	b, ok := m.board()
	if !ok {
		return ""
	}
	st, ok := m.stats[b.ID]
	if !ok || st.GamesCount == 0 {
		return b.Description
	}
	parts := []string{
		fmt.Sprintf("Best %d", st.HighScore),
		fmt.Sprintf("Avg %.0f", st.AvgScore),
		fmt.Sprintf("%d games", st.GamesCount),
	}
	if st.BestChain > 1 {
		parts = append(parts, fmt.Sprintf("chain x%d", st.BestChain))
	}
	if !st.LastPlayed.IsZero() {
		parts = append(parts, "last "+st.LastPlayed.Format("Jan 02"))
	}
	return strings.Join(parts, " · ")
}

func (m ScoreboardModel) body() string {
	switch {
	case m.store == nil:
		return noticeStyle.Render("Scores are unavailable.\nThe score database could not be opened.")
	case m.err != nil:
		return noticeStyle.Render("Could not load scores:\n" + m.err.Error())
	case len(m.results) == 0:
		return noticeStyle.Render("No results on this board yet.")
	}
	return m.table.View()
}

// IsGoingBack reports whether the player asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.exit == scoresBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.exit == scoresQuit
}

// RunScoreboard shows the leaderboard in its own program and reports whether
// the player wants the menu back.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
