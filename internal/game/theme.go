package game

import (
	"github.com/vovakirdan/tui-connect4/internal/board"
	"github.com/vovakirdan/tui-connect4/internal/core"
)

// PlayerStyle is how one side is named and drawn.
type PlayerStyle struct {
	Name  string
	Token rune
	Color core.Color
}

// Theme holds the presentation choices the controller renders with.
type Theme struct {
	A         PlayerStyle
	B         PlayerStyle
	Grid      core.Color
	Highlight core.Color
	// HighlightWin draws the winning four in the highlight color.
	HighlightWin bool
}

// DefaultTheme draws X in red and O in yellow on a blue frame.
func DefaultTheme() Theme {
	return Theme{
		A:            PlayerStyle{Name: "X", Token: 'X', Color: core.ColorBrightRed},
		B:            PlayerStyle{Name: "O", Token: 'O', Color: core.ColorBrightYellow},
		Grid:         core.ColorBlue,
		Highlight:    core.ColorBrightGreen,
		HighlightWin: true,
	}
}

// Style returns the style of p. Unknown players get an empty style.
func (t Theme) Style(p board.Player) PlayerStyle {
	switch p {
	case board.PlayerA:
		return t.A
	case board.PlayerB:
		return t.B
	default:
		return PlayerStyle{Token: ' '}
	}
}
