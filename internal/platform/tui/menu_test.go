package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catch-arcade/internal/core"
	"github.com/vovakirdan/catch-arcade/internal/registry"
	"github.com/vovakirdan/catch-arcade/internal/storage"
)

func init() {
	registry.Register("scripted", func() registry.Game { return &scriptedGame{overAt: 1000} })
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func pressMenu(m MenuModel, msgs ...tea.KeyMsg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

func TestMenuResults(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	tests := []struct {
		name   string
		keys   []tea.KeyMsg
		expect MenuResult
	}{
		{"select game", []tea.KeyMsg{enter}, MenuResult{GameID: "scripted", Config: cfg}},
		{"scores entry", []tea.KeyMsg{down, enter}, MenuResult{WantsScoreboard: true, Config: cfg}},
		{"wrap to quit", []tea.KeyMsg{up, enter}, MenuResult{Quit: true, Config: cfg}},
		{"tab opens scores", []tea.KeyMsg{keyMsg("tab")}, MenuResult{WantsScoreboard: true, Config: cfg}},
		{"q quits", []tea.KeyMsg{keyMsg("q")}, MenuResult{Quit: true, Config: cfg}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := pressMenu(NewMenuModel(nil, cfg), tt.keys...)
			if got := resultOf(m); got != tt.expect {
				t.Errorf("resultOf() = %+v, expected %+v", got, tt.expect)
			}
		})
	}
}

func TestMenuOpenIsQuitResult(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if m.Chosen() != nil {
		t.Fatal("nothing should be chosen before a key press")
	}
	if !resultOf(m).Quit {
		t.Error("a menu closed without a choice should quit")
	}
}

func TestMenuShowsBestScore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveResult("scripted", 450, 30*time.Second); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if m.items[0].Best != 450 {
		t.Errorf("Best = %d, expected 450", m.items[0].Best)
	}
	if view := m.View(); !strings.Contains(view, "best 450") {
		t.Error("menu view should show the best score")
	}
}

func TestMenuTracksResize(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	cfg := next.(MenuModel).Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %dx%d, expected 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}
