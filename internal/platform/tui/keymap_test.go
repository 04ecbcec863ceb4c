package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/redistricting/internal/core"
)

// keyMsg builds the key message bubbletea sends for a key name.
func keyMsg(name string) tea.KeyMsg {
	switch name {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap().ForState(false)

	tests := []struct {
		key      string
		expected core.Action
	}{
		{"up", core.ActionUp},
		{"k", core.ActionUp},
		{"w", core.ActionUp},
		{"j", core.ActionDown},
		{"h", core.ActionLeft},
		{"d", core.ActionRight},
		{" ", core.ActionPaint},
		{"x", core.ActionErase},
		{"backspace", core.ActionErase},
		{"tab", core.ActionNextDistrict},
		{"]", core.ActionNextDistrict},
		{"shift+tab", core.ActionPrevDistrict},
		{"c", core.ActionClearMap},
		{"enter", core.ActionConfirm},
		{"n", core.ActionReroll},
		{"g", core.ActionConcede},
		{"r", core.ActionNone}, // restart only after the run is over
		{"?", core.ActionHelp},
		{"esc", core.ActionBack},
		{"q", core.ActionQuit},
		{"ctrl+c", core.ActionQuit},
		{"z", core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := keys.Action(keyMsg(tc.key)); got != tc.expected {
				t.Errorf("Action(%q) = %v, expected %v", tc.key, got, tc.expected)
			}
		})
	}
}

func TestKeyMapForStateOver(t *testing.T) {
	keys := DefaultKeyMap().ForState(true)

	for _, k := range []string{" ", "x", "enter", "n", "g", "c", "up", "tab"} {
		if got := keys.Action(keyMsg(k)); got != core.ActionNone {
			t.Errorf("Action(%q) after the run = %v, expected none", k, got)
		}
	}
	if got := keys.Action(keyMsg("r")); got != core.ActionRestart {
		t.Errorf("Action(r) after the run = %v, expected restart", got)
	}
	if _, ok := keys.BrushIndex(keyMsg("1")); ok {
		t.Error("brush keys should be disabled after the run")
	}
	if got := keys.Action(keyMsg("q")); got != core.ActionQuit {
		t.Errorf("quit should stay enabled, got %v", got)
	}
}

func TestKeyMapBrushIndex(t *testing.T) {
	keys := DefaultKeyMap()

	for i, k := range []string{"1", "2", "5", "9"} {
		expected := []int{0, 1, 4, 8}[i]
		got, ok := keys.BrushIndex(keyMsg(k))
		if !ok || got != expected {
			t.Errorf("BrushIndex(%q) = (%d, %v), expected (%d, true)", k, got, ok, expected)
		}
	}
	if _, ok := keys.BrushIndex(keyMsg("0")); ok {
		t.Error("0 should not pick a brush")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		key      string
		expected MenuAction
	}{
		{"up", MenuActionUp},
		{"j", MenuActionDown},
		{"enter", MenuActionSelect},
		{" ", MenuActionSelect},
		{"esc", MenuActionBack},
		{"tab", MenuActionScoreboard},
		{"q", MenuActionQuit},
		{"z", MenuActionNone},
	}

	for _, tc := range tests {
		if got := MapKeyToMenuAction(keyMsg(tc.key)); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.key, got, tc.expected)
		}
	}
}
