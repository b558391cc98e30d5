package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionUp             // W, Up arrow - jump or climb
	ActionDown           // S, Down arrow - climb down
	ActionShift          // reserved
	ActionRelease        // reserved
	ActionRespawn        // R key - back to the spawn point of the current map
	ActionHitbox         // H key - toggle the hit box overlay
	ActionPause          // P key - freeze the clock
	ActionBack           // B, Escape - go back to menu
	ActionQuit           // Q, Ctrl+C - exit game/session
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionShift:   "Shift",
	ActionRelease: "Release",
	ActionRespawn: "Respawn",
	ActionHitbox:  "Hitbox",
	ActionPause:   "Pause",
	ActionBack:    "Back",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Directional reports whether the action is a movement command.
func (a Action) Directional() bool {
	return a >= ActionLeft && a <= ActionRelease
}

// InputFrame holds the actions received since the last simulation tick,
// in arrival order. Two presses of the same key are two moves.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Push appends an action to the queue. ActionNone is dropped.
func (f *InputFrame) Push(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Clear resets the queue for the next frame, keeping its storage.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}
