package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/redistricting/internal/core"
	"github.com/vovakirdan/redistricting/internal/district"
	"github.com/vovakirdan/redistricting/internal/game"
	"github.com/vovakirdan/redistricting/internal/storage"
)

// Model is the Bubble Tea model for one redistricting campaign.
type Model struct {
	session  *game.Session
	opts     game.Options
	recorder *game.Recorder
	logger   *log.Logger
	config   core.RuntimeConfig

	keys   KeyMap
	help   help.Model
	table  table.Model
	screen *core.Screen

	cursor district.Coord
	brush  district.DistrictID

	flash   string
	flashID int

	quitting   bool
	backToMenu bool
}

// NewModel starts a campaign and records a new run in store (which may be nil).
func NewModel(opts game.Options, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts.Seed = cfg.Seed
	opts.Logger = logger

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	m := Model{
		opts:     opts,
		recorder: game.NewRecorder(store, cfg.Player, cfg.Difficulty, logger),
		logger:   logger,
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     h,
	}
	if err := m.startRun(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// startRun creates a fresh session and run record.
func (m *Model) startRun() error {
	session, err := game.New(m.opts)
	if err != nil {
		return err
	}

	m.session = session
	m.cursor = district.C(0, 0)
	m.brush = 0
	m.keys = m.keys.ForState(false)
	m.resetLevelView()
	m.recorder.Start(session)

	m.logger.Info("run started", "run", m.recorder.RunID(), "seed", session.Seed(), "difficulty", m.config.Difficulty)
	return nil
}

// resetLevelView sizes the board and the district table for the current level.
func (m *Model) resetLevelView() {
	w, h := BoardSize(m.session.Map().Size())
	if m.screen == nil {
		m.screen = core.NewScreen(w, h)
	} else {
		m.screen.Resize(w, h)
	}
	m.table = newDistrictTable(m.session.Level().Districts)
	m.refreshTable()
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clearFlashMsg:
		if msg.id == m.flashID {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if i, ok := m.keys.BrushIndex(msg); ok {
		if i < m.session.Level().Districts {
			m.brush = district.DistrictID(i)
			m.table.SetCursor(i)
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	if dx, dy, ok := action.Moves(); ok {
		m.moveCursor(dx, dy)
		return m, nil
	}

	switch action {
	case core.ActionQuit:
		m.recorder.Finish(m.session, storage.EndQuit)
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.recorder.Finish(m.session, storage.EndQuit)
		m.backToMenu = true
		return m, nil

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case core.ActionPaint:
		return m.report(m.session.Assign(m.cursor, m.brush))

	case core.ActionErase:
		return m.report(m.session.Unassign(m.cursor))

	case core.ActionNextDistrict:
		m.cycleBrush(1)
		return m, nil

	case core.ActionPrevDistrict:
		m.cycleBrush(-1)
		return m, nil

	case core.ActionClearMap:
		return m.report(m.session.ClearAll())

	case core.ActionConfirm:
		return m.confirm()

	case core.ActionReroll:
		if err := m.session.Reroll(); err != nil {
			return m.report(err)
		}
		m.resetLevelView()
		return m.setFlash("Redrew the map.")

	case core.ActionConcede:
		return m.concede()

	case core.ActionRestart:
		m.opts.Seed = time.Now().UnixNano()
		m.config.Seed = m.opts.Seed
		if err := m.startRun(); err != nil {
			return m.report(err)
		}
		return m.setFlash("A new term begins.")
	}

	return m, nil
}

// report refreshes the district table after an edit and flashes err, if any.
func (m Model) report(err error) (tea.Model, tea.Cmd) {
	m.refreshTable()
	if err != nil {
		return m.setFlash(err.Error())
	}
	return m, nil
}

func (m Model) setFlash(text string) (tea.Model, tea.Cmd) {
	m.flashID++
	m.flash = text
	return m, flashCmd(m.flashID)
}

func (m *Model) moveCursor(dx, dy int) {
	size := m.session.Map().Size()
	x := min(max(m.cursor.X+dx, 0), size-1)
	y := min(max(m.cursor.Y+dy, 0), size-1)
	m.cursor = district.C(x, y)
}

func (m *Model) cycleBrush(delta int) {
	n := m.session.Level().Districts
	m.brush = district.DistrictID((int(m.brush) + delta + n) % n)
	m.table.SetCursor(int(m.brush))
}

// confirm submits the plan and moves on to the next level.
func (m Model) confirm() (tea.Model, tea.Cmd) {
	number := m.session.Number()
	cleared, err := m.session.Confirm()
	if errors.Is(err, game.ErrNotSolved) {
		return m.setFlash(m.unsolvedReason())
	}
	if err != nil {
		return m.report(err)
	}

	m.recorder.LevelCleared(m.session, number, cleared)
	m.cursor = district.C(0, 0)
	m.brush = 0
	m.resetLevelView()
	return m.setFlash(fmt.Sprintf("Re-elected! %d %s in office.", m.session.Score(), plural(m.session.Score(), "year", "years")))
}

// unsolvedReason explains why the plan cannot be confirmed yet.
func (m Model) unsolvedReason() string {
	summary := m.session.Summary()
	level := m.session.Level()
	switch {
	case summary.Unassigned > 0:
		return fmt.Sprintf("%d %s still outside any district.", summary.Unassigned, plural(summary.Unassigned, "tile is", "tiles are"))
	}
	if reason, ok := splitReason(m.session.Map(), m.session.Results()); ok {
		return reason
	}
	switch {
	case summary.Valid < summary.Districts:
		return fmt.Sprintf("%d %s invalid.", summary.Districts-summary.Valid, plural(summary.Districts-summary.Valid, "district is", "districts are"))
	default:
		return fmt.Sprintf("You win %d of %d districts; you need %d.", summary.Favorable, summary.Districts, level.DistrictsToWin())
	}
}

// splitReason points at the smallest stray piece of the first district
// that has the right size but is not contiguous.
func splitReason(dm *district.Map, results []district.DistrictResult) (string, bool) {
	for _, r := range results {
		if r.Validity != district.ValidityNonContiguous {
			continue
		}
		tiles := dm.DistrictTiles(r.ID)
		coords := make([]district.Coord, len(tiles))
		for i, tile := range tiles {
			coords[i] = tile.Coord
		}
		regions := district.Regions(coords)
		if len(regions) < 2 {
			continue
		}
		stray := regions[0]
		for _, region := range regions[1:] {
			if len(region) < len(stray) {
				stray = region
			}
		}
		return fmt.Sprintf("District %s is split in %d pieces; the smallest starts at column %d, row %d.",
			DistrictLabel(r.ID), len(regions), stray[0].X+1, stray[0].Y+1), true
	}
	return "", false
}

// concede ends the run and records it.
func (m Model) concede() (tea.Model, tea.Cmd) {
	score := m.session.Concede()
	m.recorder.Finish(m.session, storage.EndConceded)
	m.keys = m.keys.ForState(true)
	return m.setFlash(fmt.Sprintf("You stepped down after %d %s.", score, plural(score, "year", "years")))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(palette[core.ColorTitle])
	b.WriteString(titleStyle.Render("R E D I S T R I C T I N G"))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	m.screen.Clear()
	DrawBoard(m.screen, m.session.Map(), m.cursor)
	board := RenderScreen(m.screen)

	panel := m.renderPanel()
	if m.config.ScreenW > 0 && lipgloss.Width(board)+lipgloss.Width(panel)+2 > m.config.ScreenW {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, board, panel))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", panel))
	}
	b.WriteString("\n\n")

	if m.flash != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(palette[core.ColorInvalid]).Render(m.flash))
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(palette[core.ColorMuted])
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statusLine summarizes the level and run.
func (m Model) statusLine() string {
	level := m.session.Level()
	if m.session.Over() {
		return fmt.Sprintf("Out of office after %d %s. Press r for a new run.",
			m.session.Score(), plural(m.session.Score(), "year", "years"))
	}

	brush := styleFor(core.ColorTitle, core.ColorCursor).Render(" " + DistrictLabel(m.brush) + " ")
	return fmt.Sprintf("Year %d  Level %d  %dx%d  %d districts of %d-%d voters  Brush %s",
		m.session.Score()+1, m.session.Number(), level.MapSize, level.MapSize,
		level.Districts, level.MinDistrictSize, level.MaxDistrictSize, brush)
}

// renderPanel renders the district table and the vote summary.
func (m Model) renderPanel() string {
	summary := m.session.Summary()
	level := m.session.Level()

	won := fmt.Sprintf("Won %d of %d (need %d)", summary.Favorable, summary.Districts, level.DistrictsToWin())
	wonColor := core.ColorInvalid
	if summary.Favorable >= level.DistrictsToWin() {
		wonColor = core.ColorValid
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(palette[wonColor]).Render(won),
		fmt.Sprintf("Unassigned tiles: %d", summary.Unassigned),
	}
	if m.session.State() == game.StateSolved {
		lines = append(lines, styleFor(core.ColorValid, core.ColorDefault).Render("Plan is sound. Press enter."))
	}

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette[core.ColorMuted]).
		Padding(0, 1)

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.table.View(),
		"",
		strings.Join(lines, "\n"),
	))
}

// newDistrictTable creates the per-district results table.
func newDistrictTable(districts int) table.Model {
	columns := []table.Column{
		{Title: "D", Width: 2},
		{Title: "Voters", Width: 6},
		{Title: "Blue", Width: 4},
		{Title: "Red", Width: 4},
		{Title: "Winner", Width: 11},
		{Title: "Status", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(districts+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// refreshTable updates the table rows from the current results.
func (m *Model) refreshTable() {
	results := m.session.Results()
	rows := make([]table.Row, len(results))
	for i, r := range results {
		rows[i] = table.Row{
			DistrictLabel(r.ID),
			fmt.Sprintf("%d", r.Population),
			fmt.Sprintf("%d", r.Favorable),
			fmt.Sprintf("%d", r.Unfavorable),
			winnerLabel(r.Winner),
			validityLabel(r.Validity),
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(int(m.brush))
}

func winnerLabel(w district.Winner) string {
	switch w {
	case district.WinnerFavorable:
		return "Blue"
	case district.WinnerUnfavorable:
		return "Red"
	case district.WinnerTie:
		return "Tie"
	default:
		return "-"
	}
}

func validityLabel(v district.Validity) string {
	switch v {
	case district.ValidityValid:
		return "ok"
	case district.ValidityTooSmall:
		return "too small"
	case district.ValidityTooBig:
		return "too big"
	case district.ValidityNonContiguous:
		return "not contiguous"
	default:
		return v.String()
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Session returns the model's campaign.
func (m Model) Session() *game.Session {
	return m.session
}

// RunID returns the stored run's ID, empty without storage.
func (m Model) RunID() string {
	return m.recorder.RunID()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}
