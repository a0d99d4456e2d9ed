package core

// Action represents a discrete input event, abstracted from physical keys
// and mouse buttons.
type Action int

const (
	ActionNone    Action = iota
	ActionAttack         // Space, left mouse button - swing the weapon
	ActionPause          // P, Escape - pause/unpause
	ActionConfirm        // Enter - activate the focused menu button
	ActionBack           // B - back to the previous menu
	ActionRestart        // R - start a new round after game over
	ActionDebug          // G - toggle the grid overlay
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAttack:
		return "Attack"
	case ActionPause:
		return "Pause"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionDebug:
		return "Debug"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input sampled for one rendered frame.
// Move is the normalized direction from the held direction keys, Aim is the
// pointer position in world coordinates.
type InputFrame struct {
	Move    Vec2
	Aim     Vec2
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	clone.Move = f.Move
	clone.Aim = f.Aim
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// MoveVector collapses directional key state into a normalized move vector.
// Opposite keys cancel out.
func MoveVector(up, down, left, right bool) Vec2 {
	var v Vec2
	if up {
		v.Y--
	}
	if down {
		v.Y++
	}
	if left {
		v.X--
	}
	if right {
		v.X++
	}
	return v.Normalize()
}
