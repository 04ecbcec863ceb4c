package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/redistricting/internal/config"
	"github.com/vovakirdan/redistricting/internal/core"
	"github.com/vovakirdan/redistricting/internal/storage"
)

// MenuItem represents a selectable difficulty in the menu.
type MenuItem struct {
	Preset      config.DifficultyPreset
	Title       string
	Description string
}

var menuItems = []MenuItem{
	{config.DifficultyEasy, "Easy", "a friendlier electorate that sours slowly"},
	{config.DifficultyNormal, "Normal", "the standard campaign"},
	{config.DifficultyHard, "Hard", "larger maps, more districts, fewer friends"},
	{config.DifficultyFixed, "Fixed", "the opening level, forever"},
}

// MenuModel is the Bubble Tea model for the difficulty picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	highScore      int
	config         core.RuntimeConfig
	quitting       bool
	selected       *MenuItem // Set when user picks a difficulty
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The cursor starts on the
// difficulty named in cfg.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		items:  menuItems,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
	for i, item := range m.items {
		if string(item.Preset) == cfg.Difficulty {
			m.cursor = i
		}
	}
	if store != nil {
		if best, err := store.HighScore(); err == nil {
			m.highScore = best
		}
	}
	return m
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
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		m.selected = &selected
		m.config.Difficulty = string(selected.Preset)

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(palette[core.ColorTitle])
	mutedStyle := lipgloss.NewStyle().Foreground(palette[core.ColorMuted])

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("R E D I S T R I C T I N G"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Draw the lines. Win the majority. Stay in office.", m.width))
	b.WriteString("\n")
	if m.highScore > 0 {
		b.WriteString(centerText(fmt.Sprintf("Longest term: %d %s", m.highScore, plural(m.highScore, "year", "years")), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(palette[core.ColorFavorable])
		}
		line := fmt.Sprintf("%s%-7s %s", cursor, item.Title, mutedStyle.Render(item.Description))
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(mutedStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
