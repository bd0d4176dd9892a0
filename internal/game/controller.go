// Package game implements the Connect Four screen flow: a menu, the board
// while playing, and the win/draw result. The Controller owns the board and
// interprets abstract input events; it has no terminal dependencies.
package game

import (
	"github.com/vovakirdan/tui-connect4/internal/board"
	"github.com/vovakirdan/tui-connect4/internal/core"
)

// State is the active screen.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateFinished
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// FirstPlayer always opens a game.
const FirstPlayer = board.PlayerA

// Outcome describes a finished game.
type Outcome struct {
	Winner board.Player // Zero on a draw
	Line   board.Line   // Winning four, zero on a draw
	Moves  int
}

// Draw reports whether the game ended with a full board and no winner.
func (o Outcome) Draw() bool {
	return !o.Winner.Valid()
}

// Controller is the Menu -> Playing -> Finished -> Menu state machine.
type Controller struct {
	theme  Theme
	layout Layout

	board      board.Board
	state      State
	current    board.Player
	moves      int
	winner     board.Player
	line       board.Line
	history    []int
	cursor     int
	last       board.Pos
	hasLast    bool
	terminated bool
}

// NewController creates a controller on the menu screen.
func NewController(theme Theme, cfg core.RuntimeConfig) *Controller {
	c := &Controller{
		theme:   theme,
		state:   StateMenu,
		current: FirstPlayer,
		cursor:  board.Columns / 2,
	}
	c.Resize(cfg.ScreenW, cfg.ScreenH)
	return c
}

// Resize recomputes the board placement for a new screen size.
func (c *Controller) Resize(w, h int) {
	c.layout = NewLayout(w, h)
}

// Layout returns the current board placement.
func (c *Controller) Layout() Layout {
	return c.layout
}

// State returns the active screen.
func (c *Controller) State() State {
	return c.state
}

// Current returns the player whose turn it is.
func (c *Controller) Current() board.Player {
	return c.current
}

// Moves returns the number of tokens placed in the current game.
func (c *Controller) Moves() int {
	return c.moves
}

// Cursor returns the column the keyboard cursor points at.
func (c *Controller) Cursor() int {
	return c.cursor
}

// History returns the columns played so far, in order.
func (c *Controller) History() []int {
	out := make([]int, len(c.history))
	copy(out, c.history)
	return out
}

// Board returns a copy of the grid.
func (c *Controller) Board() board.Board {
	return c.board
}

// Terminated reports whether the session has ended.
func (c *Controller) Terminated() bool {
	return c.terminated
}

// Outcome returns the result once the game is finished.
func (c *Controller) Outcome() (Outcome, bool) {
	if c.state != StateFinished {
		return Outcome{}, false
	}
	return Outcome{Winner: c.winner, Line: c.line, Moves: c.moves}, true
}

// Start leaves the menu and begins a new game with an empty board.
func (c *Controller) Start() bool {
	if c.terminated || c.state != StateMenu {
		return false
	}
	c.board.Reset()
	c.current = FirstPlayer
	c.moves = 0
	c.winner = 0
	c.line = board.Line{}
	c.history = c.history[:0]
	c.cursor = board.Columns / 2
	c.hasLast = false
	c.state = StatePlaying
	return true
}

// Move drops the current player's token into col.
// Out-of-range and full columns are ignored and leave everything unchanged.
func (c *Controller) Move(col int) bool {
	if c.terminated || c.state != StatePlaying {
		return false
	}

	row, ok := c.board.Drop(col, c.current)
	if !ok {
		return false
	}

	c.moves++
	c.history = append(c.history, col)
	c.cursor = col
	c.last = board.Pos{Row: row, Col: col}
	c.hasLast = true

	// Only the mover can have completed a line. A win beats a full board.
	if line, won := c.board.FindFour(c.current); won {
		c.winner = c.current
		c.line = line
		c.state = StateFinished
		return true
	}
	if c.board.IsFull() {
		c.winner = 0
		c.state = StateFinished
		return true
	}

	c.current = c.current.Other()
	return true
}

// Restart returns from the result screen to the menu.
func (c *Controller) Restart() bool {
	if c.terminated || c.state != StateFinished {
		return false
	}
	c.board.Reset()
	c.winner = 0
	c.line = board.Line{}
	c.current = FirstPlayer
	c.hasLast = false
	c.state = StateMenu
	return true
}

// Quit ends the session from the result screen.
func (c *Controller) Quit() bool {
	if c.terminated || c.state != StateFinished {
		return false
	}
	c.terminated = true
	return true
}

// Close ends the session from any screen, as when the terminal goes away.
func (c *Controller) Close() {
	c.terminated = true
}

// Handle interprets one input event for the active screen and reports
// whether it changed anything. Events a screen does not accept are ignored.
func (c *Controller) Handle(ev core.Event) bool {
	if ev.Kind == core.EventAction && ev.Action == core.ActionClose {
		c.Close()
		return true
	}
	if c.terminated {
		return false
	}

	switch c.state {
	case StateMenu:
		if ev.Kind == core.EventAction && ev.Action == core.ActionStart {
			return c.Start()
		}
	case StatePlaying:
		return c.handlePlaying(ev)
	case StateFinished:
		if ev.Kind != core.EventAction {
			return false
		}
		switch ev.Action {
		case core.ActionRestart:
			return c.Restart()
		case core.ActionQuit:
			return c.Quit()
		}
	}
	return false
}

func (c *Controller) handlePlaying(ev core.Event) bool {
	switch ev.Kind {
	case core.EventAction:
		switch ev.Action {
		case core.ActionLeft:
			return c.moveCursor(-1)
		case core.ActionRight:
			return c.moveCursor(1)
		case core.ActionDrop:
			return c.Move(c.cursor)
		}
	case core.EventColumn:
		return c.Move(ev.Column)
	case core.EventPointer:
		return c.Move(c.layout.ColumnAt(ev.X))
	case core.EventHover:
		col := c.layout.ColumnAt(ev.X)
		if col < 0 || col >= board.Columns || col == c.cursor {
			return false
		}
		c.cursor = col
		return true
	}
	return false
}

func (c *Controller) moveCursor(delta int) bool {
	next := core.Clamp(c.cursor+delta, 0, board.Columns-1)
	if next == c.cursor {
		return false
	}
	c.cursor = next
	return true
}
