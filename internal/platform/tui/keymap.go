package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/redistricting/internal/core"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Paint        key.Binding
	Erase        key.Binding
	Brush        key.Binding // 1-9 pick the brush district directly
	NextDistrict key.Binding
	PrevDistrict key.Binding
	ClearMap     key.Binding
	Confirm      key.Binding
	Reroll       key.Binding
	Concede      key.Binding
	Restart      key.Binding
	Help         key.Binding
	Back         key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Paint, k.Erase, k.NextDistrict, k.Confirm, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Paint, k.Erase, k.Brush, k.NextDistrict, k.PrevDistrict},
		{k.ClearMap, k.Confirm, k.Reroll, k.Concede, k.Restart},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "right"),
		),
		Paint: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "paint"),
		),
		Erase: key.NewBinding(
			key.WithKeys("x", "backspace", "delete"),
			key.WithHelp("x", "erase"),
		),
		Brush: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "pick district"),
		),
		NextDistrict: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("tab", "next district"),
		),
		PrevDistrict: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("S-tab", "prev district"),
		),
		ClearMap: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear map"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm plan"),
		),
		Reroll: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new map"),
		),
		Concede: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "concede"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new run"),
			key.WithDisabled(),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ForState enables the bindings that apply while playing or after the
// run is over.
func (k KeyMap) ForState(over bool) KeyMap {
	for _, b := range []*key.Binding{
		&k.Up, &k.Down, &k.Left, &k.Right,
		&k.Paint, &k.Erase, &k.Brush, &k.NextDistrict, &k.PrevDistrict,
		&k.ClearMap, &k.Confirm, &k.Reroll, &k.Concede,
	} {
		b.SetEnabled(!over)
	}
	k.Restart.SetEnabled(over)
	return k
}

// Action translates a key message to a game action.
// Disabled bindings never match.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Paint):
		return core.ActionPaint
	case key.Matches(msg, k.Erase):
		return core.ActionErase
	case key.Matches(msg, k.NextDistrict):
		return core.ActionNextDistrict
	case key.Matches(msg, k.PrevDistrict):
		return core.ActionPrevDistrict
	case key.Matches(msg, k.ClearMap):
		return core.ActionClearMap
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Reroll):
		return core.ActionReroll
	case key.Matches(msg, k.Concede):
		return core.ActionConcede
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// BrushIndex returns the zero-based district picked by a digit key.
func (k KeyMap) BrushIndex(msg tea.KeyMsg) (int, bool) {
	if !key.Matches(msg, k.Brush) {
		return 0, false
	}
	return int(msg.String()[0] - '1'), true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
