package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/game"
)

// KeyMap defines the key bindings for a game session.
type KeyMap struct {
	Start      key.Binding
	Left       key.Binding
	Right      key.Binding
	Drop       key.Binding
	Column     key.Binding
	Restart    key.Binding
	Quit       key.Binding
	Close      key.Binding
	Help       key.Binding
	Screenshot key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "right"),
		),
		Drop: key.NewBinding(
			key.WithKeys(" ", "enter", "down", "j", "s"),
			key.WithHelp("space/↓", "drop"),
		),
		Column: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
			key.WithHelp("1-7", "drop in column"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Close: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "exit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// Event translates a key press to a controller event for the given screen.
// The same key may mean different things on different screens: space
// starts a game on the menu and drops a token while playing.
func (k KeyMap) Event(msg tea.KeyMsg, state game.State) (core.Event, bool) {
	if key.Matches(msg, k.Close) {
		return core.ActionEvent(core.ActionClose), true
	}

	switch state {
	case game.StateMenu:
		if key.Matches(msg, k.Start) {
			return core.ActionEvent(core.ActionStart), true
		}

	case game.StatePlaying:
		switch {
		case key.Matches(msg, k.Column):
			return core.ColumnEvent(int(msg.String()[0] - '1')), true
		case key.Matches(msg, k.Left):
			return core.ActionEvent(core.ActionLeft), true
		case key.Matches(msg, k.Right):
			return core.ActionEvent(core.ActionRight), true
		case key.Matches(msg, k.Drop):
			return core.ActionEvent(core.ActionDrop), true
		}

	case game.StateFinished:
		switch {
		case key.Matches(msg, k.Restart):
			return core.ActionEvent(core.ActionRestart), true
		case key.Matches(msg, k.Quit):
			return core.ActionEvent(core.ActionQuit), true
		}
	}

	return core.Event{}, false
}

// screenHelp adapts the key map to the help bubble for one screen.
type screenHelp struct {
	keys  KeyMap
	state game.State
}

// ShortHelp returns key bindings for the short help view.
func (h screenHelp) ShortHelp() []key.Binding {
	k := h.keys
	switch h.state {
	case game.StateMenu:
		return []key.Binding{k.Start, k.Close, k.Help}
	case game.StatePlaying:
		return []key.Binding{k.Left, k.Right, k.Drop, k.Column, k.Help}
	default:
		return []key.Binding{k.Restart, k.Quit, k.Help}
	}
}

// FullHelp returns key bindings for the full help view.
func (h screenHelp) FullHelp() [][]key.Binding {
	k := h.keys
	return [][]key.Binding{
		h.ShortHelp()[:len(h.ShortHelp())-1],
		{k.Screenshot, k.Close},
	}
}
