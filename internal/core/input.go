package core

// Action is a semantic input, abstracted from physical keys.
// The platform maps key presses to actions; the game never sees raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionStart          // Space, Enter on the menu
	ActionLeft           // Left, H - move the column cursor
	ActionRight          // Right, L - move the column cursor
	ActionDrop           // Space, Enter, Down - drop at the cursor
	ActionRestart        // R - back to the menu after a result
	ActionQuit           // Q - leave from the result screen
	ActionClose          // Ctrl+C - terminal closed, always terminates
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDrop:
		return "Drop"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// EventKind discriminates the payload of an Event.
type EventKind int

const (
	EventAction  EventKind = iota // Action is set
	EventColumn                   // Column is set (number keys)
	EventPointer                  // X, Y of a pointer press
	EventHover                    // X, Y of pointer motion
)

// Event is one input event delivered to the game.
type Event struct {
	Kind   EventKind
	Action Action
	Column int
	X, Y   int
}

// ActionEvent wraps a semantic action.
func ActionEvent(a Action) Event {
	return Event{Kind: EventAction, Action: a}
}

// ColumnEvent selects a board column directly (0-based).
func ColumnEvent(col int) Event {
	return Event{Kind: EventColumn, Column: col}
}

// PointerEvent is a primary-button press at screen cell (x, y).
func PointerEvent(x, y int) Event {
	return Event{Kind: EventPointer, X: x, Y: y}
}

// HoverEvent is pointer motion to screen cell (x, y).
func HoverEvent(x, y int) Event {
	return Event{Kind: EventHover, X: x, Y: y}
}
