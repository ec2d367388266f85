package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/catch-arcade/internal/core"
	"github.com/vovakirdan/catch-arcade/internal/registry"
	"github.com/vovakirdan/catch-arcade/internal/storage"
)

// MenuEntryKind tells whether a menu row starts a game or opens a screen.
type MenuEntryKind int

const (
	EntryGame MenuEntryKind = iota
	EntryScores
	EntryQuit
)

// MenuItem is one row of the main menu.
type MenuItem struct {
	Kind   MenuEntryKind
	GameID string
	Title  string
	Best   int // Best recorded score, 0 when none
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	chosen    *MenuItem
}

// NewMenuModel lists every registered game followed by the scores and quit entries.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{Kind: EntryGame, GameID: g.ID, Title: g.Title}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}
	items = append(items,
		MenuItem{Kind: EntryScores, Title: "High Scores"},
		MenuItem{Kind: EntryQuit, Title: "Quit"},
	)

	return MenuModel{
		items:     items,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		return m.choose(EntryQuit)

	case MenuActionScoreboard:
		return m.choose(EntryScores)

	case MenuActionUp:
		m.cursor = (m.cursor + len(m.items) - 1) % len(m.items)

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(m.items)

	case MenuActionSelect:
		item := m.items[m.cursor]
		m.chosen = &item
		return m, tea.Quit
	}
	return m, nil
}

// choose picks the first entry of the given kind and leaves the menu.
func (m MenuModel) choose(kind MenuEntryKind) (tea.Model, tea.Cmd) {
	for i := range m.items {
		if m.items[i].Kind == kind {
			item := m.items[i]
			m.chosen = &item
			break
		}
	}
	return m, tea.Quit
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).MarginBottom(1)
	menuItemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	menuCurStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuBestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// View renders the menu centered in the terminal.
func (m MenuModel) View() string {
	if m.chosen != nil {
		return ""
	}

	rows := []string{menuTitleStyle.Render("C A T C H   A R C A D E")}
	for i, item := range m.items {
		label := item.Title
		if i == m.cursor {
			label = menuCurStyle.Render(" " + label + " ")
		} else {
			label = " " + label + " "
		}
		if item.Kind == EntryGame && item.Best > 0 {
			label += menuBestStyle.Render(fmt.Sprintf("  best %d", item.Best))
		}
		if item.Kind != EntryGame && (i == 0 || m.items[i-1].Kind == EntryGame) {
			rows = append(rows, "")
		}
		rows = append(rows, menuItemStyle.Render(label))
	}
	rows = append(rows, menuHintStyle.Render("up/down move  enter select  tab scores  q quit"))

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, body)
}

// Chosen returns the entry the user picked, or nil while the menu is open.
func (m MenuModel) Chosen() *MenuItem {
	return m.chosen
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers plain text within width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// resultOf turns the final menu state into a MenuResult.
func resultOf(m MenuModel) MenuResult {
	result := MenuResult{Config: m.Config()}
	item := m.Chosen()
	switch {
	case item == nil || item.Kind == EntryQuit:
		result.Quit = true
	case item.Kind == EntryScores:
		result.WantsScoreboard = true
	default:
		result.GameID = item.GameID
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return resultOf(m), nil
}
