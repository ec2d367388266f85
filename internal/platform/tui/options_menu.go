package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catch-arcade/internal/core"
)

// Difficulty presets offered before a round, with a short description each.
var difficultyChoices = []struct {
	Preset string
	Label  string
}{
	{"normal", "Normal"},
	{"easy", "Easy - wider catcher, three misses"},
	{"hard", "Hard - narrow catcher, more bombs"},
	{"fixed", "Fixed pace - no speed-up"},
}

// Quality tiers; "auto" classifies the host.
var qualityChoices = []string{"auto", "high", "medium", "low"}

// Options holds the user's choices from the options screen.
type Options struct {
	Difficulty string
	Quality    string
}

// OptionsModel lets users choose a difficulty preset and a quality tier.
// Up/Down picks the difficulty, Left/Right cycles the quality tier.
type OptionsModel struct {
	cursor        int
	qualityCursor int
	width         int
	height        int
	keyMapper     *KeyMapper
	choosing      bool
	quitting      bool
	back          bool
}

// NewOptionsModel creates an options screen with Normal and auto quality selected.
func NewOptionsModel(width, height int) OptionsModel {
	return OptionsModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m OptionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m OptionsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyChoices)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.qualityCursor = (m.qualityCursor + len(qualityChoices) - 1) % len(qualityChoices)
	case MenuActionRight:
		m.qualityCursor = (m.qualityCursor + 1) % len(qualityChoices)
	case MenuActionSelect:
		m.choosing = false
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the options screen.
func (m OptionsModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("C A T C H E R", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, c := range difficultyChoices {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+c.Label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Quality: < %s >", qualityChoices[m.qualityCursor]), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Up/Down: Difficulty  |  Left/Right: Quality  |  Enter: Play  |  Esc: Back", m.width))

	return b.String()
}

// Selected returns the choices, or nil if still choosing.
func (m OptionsModel) Selected() *Options {
	if m.choosing {
		return nil
	}
	return &Options{
		Difficulty: difficultyChoices[m.cursor].Preset,
		Quality:    qualityChoices[m.qualityCursor],
	}
}

// IsQuitting returns true if user wants to quit.
func (m OptionsModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m OptionsModel) WantsBack() bool {
	return m.back
}

// RunOptionsSelector runs the options screen. It returns nil options when
// the user backs out or quits.
func RunOptionsSelector(cfg core.RuntimeConfig) (*Options, core.RuntimeConfig, error) {
	p := tea.NewProgram(
		NewOptionsModel(cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(OptionsModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}
	cfg.ScreenW, cfg.ScreenH = m.width, m.height
	return m.Selected(), cfg, nil
}
