package tui

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/redistricting/internal/config"
	"github.com/vovakirdan/redistricting/internal/core"
	"github.com/vovakirdan/redistricting/internal/game"
	"github.com/vovakirdan/redistricting/internal/storage"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow of one player: menu -> game -> menu,
// with the scoreboard reachable from the menu. It is the top-level model
// for both local and SSH play.
type SessionModel struct {
	store    *storage.Store
	tuning   config.RedistrictingConfig
	config   core.RuntimeConfig
	logger   *log.Logger
	current  screenKind
	menu     MenuModel
	game     *Model
	scores   ScoreboardModel
	err      string // Last failure to start a campaign
	quitting bool
}

// NewSessionModel creates a new session model showing the menu.
func NewSessionModel(store *storage.Store, tuning config.RedistrictingConfig, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		tuning: tuning,
		config: cfg,
		logger: logger,
		menu:   NewMenuModel(store, cfg),
	}
}

// startGame begins a campaign at the given difficulty. On failure the
// menu is shown again with the error.
func (m SessionModel) startGame(preset config.DifficultyPreset) (SessionModel, tea.Cmd, error) {
	tuning := m.tuning
	config.ApplyPreset(&tuning, preset)

	cfg := m.config
	cfg.Difficulty = string(preset)

	model, err := NewModel(game.OptionsFromConfig(tuning), m.store, cfg, m.logger)
	if err != nil {
		m.logger.Error("could not start campaign", "difficulty", preset, "error", err)
		m.err = err.Error()
		m.current = screenMenu
		m.menu = NewMenuModel(m.store, m.config)
		return m, nil, err
	}

	// A fixed seed replays only the first campaign.
	m.config.Seed = 0
	m.err = ""
	m.game = &model
	m.current = screenGame
	return m, model.Init(), nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScores
		return m, m.scores.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		next, cmd, _ := m.startGame(selected.Preset)
		return next, cmd
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scores, ok := newScores.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m *SessionModel) backToMenu() {
	if m.game != nil {
		m.config.Difficulty = m.game.config.Difficulty
	}
	m.game = nil
	m.current = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}

	if m.err == "" {
		return m.menu.View()
	}
	errStyle := lipgloss.NewStyle().Foreground(palette[core.ColorInvalid])
	var b strings.Builder
	b.WriteString(m.menu.View())
	b.WriteString("\n")
	b.WriteString(centerText(errStyle.Render(m.err), m.config.ScreenW))
	return b.String()
}

// Run plays locally in the current terminal. With skipMenu the campaign
// starts straight away at cfg.Difficulty.
func Run(store *storage.Store, tuning config.RedistrictingConfig, cfg core.RuntimeConfig, skipMenu bool, logger *log.Logger) error {
	model := NewSessionModel(store, tuning, cfg, logger)

	if skipMenu {
		preset, err := config.ParsePreset(cfg.Difficulty)
		if err != nil {
			return err
		}
		if model, _, err = model.startGame(preset); err != nil {
			return err
		}
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
