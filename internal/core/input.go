package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move the cursor up
	ActionDown           // S, Down arrow - move the cursor down
	ActionLeft           // A, Left arrow - move the cursor left
	ActionRight          // D, Right arrow - move the cursor right
	ActionSelect         // Space, Enter - select the cell under the cursor
	ActionCancel         // X - drop the current selection
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionSelect:  "Select",
	ActionCancel:  "Cancel",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame represents the input state for one simulation tick.
// It contains all actions that were triggered during this frame, plus an
// optional pointer click in board coordinates.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Click is set when the player clicked a cell; ClickX/ClickY are screen
	// coordinates and are translated by the game.
	Click  bool
	ClickX int
	ClickY int
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

// SetClick records a pointer click at screen coordinates (x, y).
func (f *InputFrame) SetClick(x, y int) {
	f.Click = true
	f.ClickX = x
	f.ClickY = y
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Click = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Click, clone.ClickX, clone.ClickY = f.Click, f.ClickX, f.ClickY
	return clone
}
