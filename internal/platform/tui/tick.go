// Package tui provides the Bubble Tea front end for the game.
// It handles the terminal UI loop, input mapping, persistence of runs,
// and SSH play.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long a status message stays on screen.
const flashDuration = 3 * time.Second

// clearFlashMsg expires the status message with the given id.
type clearFlashMsg struct {
	id int
}

// flashCmd returns a Bubble Tea command that expires status message id.
func flashCmd(id int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return clearFlashMsg{id: id}
	})
}
