package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cookie-crush/internal/core"
	_ "github.com/vovakirdan/cookie-crush/internal/games/cookies"
	"github.com/vovakirdan/cookie-crush/internal/storage"
)

var menuRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}

func menuKey(t *testing.T, m MenuModel, msg tea.KeyMsg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, want MenuModel", next)
	}
	return mm
}

func TestMenuListsPresets(t *testing.T) {
	m := NewMenuModel(nil, menuRuntime)

	view := m.View()
	for _, want := range []string{"Cookie Crush: Classic", "Cookie Crush: Blitz", "Cookie Crush: Grand"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu missing %q", want)
		}
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, menuRuntime)

	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil {
		t.Fatal("Selected() = nil after enter")
	}
	if sel.GameID != "blitz" {
		t.Errorf("Selected().GameID = %q, want %q", sel.GameID, "blitz")
	}
}

func TestMenuCursorStaysInRange(t *testing.T) {
	m := NewMenuModel(nil, menuRuntime)

	for i := 0; i < 10; i++ {
		m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.Selected(); sel == nil || sel.GameID != "grand" {
		t.Errorf("Selected() = %v, want grand", sel)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, menuRuntime)
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("WantsScoreboard() = false after tab")
	}

	m = NewMenuModel(nil, menuRuntime)
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
}

func TestMenuShowsBestScore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveResult(storage.GameResult{GameID: "classic", Player: "alice", Score: 340}); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}

	m := NewMenuModel(store, menuRuntime)
	if !strings.Contains(m.View(), "best 340") {
		t.Error("menu missing best score for classic")
	}
}

func TestMenuEmptyStoreHidesBest(t *testing.T) {
	m := NewMenuModel(openStore(t), menuRuntime)
	if strings.Contains(m.View(), "best") {
		t.Error("menu shows a best score with no results saved")
	}
}

func TestMenuTracksResize(t *testing.T) {
	m := NewMenuModel(nil, menuRuntime)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(MenuModel)

	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}
