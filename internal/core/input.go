package core

// Action represents a semantic player action, abstracted from physical key presses.
// Front ends map keys to actions and act on the session through them.
type Action int

const (
	ActionNone         Action = iota
	ActionUp                  // Move the cursor up
	ActionDown                // Move the cursor down
	ActionLeft                // Move the cursor left
	ActionRight               // Move the cursor right
	ActionPaint               // Assign the tile under the cursor to the brush district
	ActionErase               // Remove the tile under the cursor from its district
	ActionNextDistrict        // Select the next brush district
	ActionPrevDistrict        // Select the previous brush district
	ActionClearMap            // Remove every tile from its district
	ActionConfirm             // Submit a solved map
	ActionReroll              // Regenerate the current level
	ActionConcede             // End the run
	ActionRestart             // Start a new run after game over
	ActionHelp                // Toggle the full help view
	ActionBack                // Leave the game for the menu
	ActionQuit                // Exit the program or session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPaint:
		return "Paint"
	case ActionErase:
		return "Erase"
	case ActionNextDistrict:
		return "NextDistrict"
	case ActionPrevDistrict:
		return "PrevDistrict"
	case ActionClearMap:
		return "ClearMap"
	case ActionConfirm:
		return "Confirm"
	case ActionReroll:
		return "Reroll"
	case ActionConcede:
		return "Concede"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Moves returns the cursor delta for a movement action.
func (a Action) Moves() (dx, dy int, ok bool) {
	switch a {
	case ActionUp:
		return 0, -1, true
	case ActionDown:
		return 0, 1, true
	case ActionLeft:
		return -1, 0, true
	case ActionRight:
		return 1, 0, true
	}
	return 0, 0, false
}
