package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cookie-crush/internal/core"
	"github.com/vovakirdan/cookie-crush/internal/registry"
	"github.com/vovakirdan/cookie-crush/internal/storage"
)

const menuBanner = "C O O K I E   C R U S H"

// bannerCookies decorates the title with one cookie of each colour.
var bannerCookies = []struct {
	glyph string
	color core.Color
}{
	{"♥", core.ColorPink},
	{"♣", core.ColorPurple},
	{"●", core.ColorBrightBlue},
	{"◆", core.ColorBrightYellow},
	{"■", core.ColorOrange},
	{"▲", core.ColorBrightGreen},
}

var (
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	entryStyle    = lipgloss.NewStyle().Padding(0, 2)
	selectedStyle = entryStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	bestStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	footStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// MenuItem is one board preset offered by the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int
}

type menuChoice int

const (
	menuBrowsing menuChoice = iota
	menuPlay
	menuScores
	menuQuit
)

// MenuModel lets the player pick a board preset or open the leaderboard.
type MenuModel struct {
	items  []MenuItem
	cursor int
	choice menuChoice
	config core.RuntimeConfig
}

// NewMenuModel lists the registered presets. A non-nil store adds each
// preset's best score.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, info := range registry.List() {
		item := MenuItem{GameID: info.ID, Title: info.Title, Description: info.Description}
		if store != nil {
			item.Best, _ = store.HighScore(info.ID)
		}
		items = append(items, item)
	}
	return MenuModel{items: items, config: cfg}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	case tea.KeyMsg:
		switch MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = core.Clamp(m.cursor-1, 0, len(m.items)-1)
		case MenuActionDown:
			m.cursor = core.Clamp(m.cursor+1, 0, len(m.items)-1)
		case MenuActionSelect:
			if len(m.items) > 0 {
				m.choice = menuPlay
				return m, tea.Quit
			}
		case MenuActionScoreboard:
			m.choice = menuScores
			return m, tea.Quit
		case MenuActionQuit:
			m.choice = menuQuit
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.choice == menuQuit {
		return ""
	}

	var cookies strings.Builder
	for _, c := range bannerCookies {
		cookies.WriteString(cellStyle(core.Cell{Color: c.color}).Render(c.glyph) + " ")
	}

	entries := make([]string, len(m.items))
	for i, item := range m.items {
		style := entryStyle
		if i == m.cursor {
			style = selectedStyle
		}
		line := item.Title
		if item.Best > 0 {
			line += "  " + bestStyle.Render(fmt.Sprintf("best %d", item.Best))
		}
		entries[i] = style.Render(line)
	}

	var about string
	if len(m.items) > 0 {
		about = m.items[m.cursor].Description
	}

	page := lipgloss.JoinVertical(lipgloss.Center,
		bannerStyle.Render(menuBanner),
		strings.TrimSpace(cookies.String()),
		"",
		lipgloss.JoinVertical(lipgloss.Left, entries...),
		"",
		about,
		footStyle.Render("↑/↓ choose · enter play · tab scores · q quit"),
	)
	if m.config.ScreenW <= 0 || m.config.ScreenH <= 0 {
		return page
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, page)
}

// Selected returns the chosen preset, or nil while browsing.
func (m MenuModel) Selected() *MenuItem {
	if m.choice != menuPlay {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// IsQuitting reports whether the player asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.choice == menuQuit
}

// WantsScoreboard reports whether the player asked for the leaderboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.choice == menuScores
}

// Config returns the runtime config, resized to the last window size seen.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult is what the standalone menu program decided.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu in its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil:
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}
