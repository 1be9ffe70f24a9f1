package core

// Action represents a semantic input action, abstracted from physical key presses.
type Action int

const (
	ActionNone Action = iota
	ActionJump        // Space, Up, W - flap, or restart after game over
	ActionQuit        // Q, Ctrl+C - close the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
