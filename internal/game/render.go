package game

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/tui-connect4/internal/board"
	"github.com/vovakirdan/tui-connect4/internal/core"
)

// Render draws the active screen into dst.
func (c *Controller) Render(dst *core.Screen) {
	dst.Clear()

	if !c.layout.Fits {
		c.renderTooSmall(dst)
		return
	}

	switch c.state {
	case StateMenu:
		c.renderMenu(dst)
	case StatePlaying:
		c.renderHUD(dst)
		c.renderBoard(dst)
	case StateFinished:
		c.renderBoard(dst)
		c.renderResult(dst)
	}
}

// renderTooSmall shows a "window too small" message.
func (c *Controller) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH), core.ColorGray)
}

func (c *Controller) renderMenu(dst *core.Screen) {
	y := c.layout.Top + 2
	dst.DrawTextCentered(y, "C O N N E C T   F O U R", core.ColorBrightWhite)
	dst.DrawTextCentered(y+2, "Press SPACE to Start", core.ColorDefault)

	a, b := c.theme.A, c.theme.B
	left := fmt.Sprintf("%c %s", a.Token, a.Name)
	right := fmt.Sprintf("%s %c", b.Name, b.Token)
	versus := left + "  vs  " + right
	x := (dst.Width() - utf8.RuneCountInString(versus)) / 2
	dst.DrawTextColor(x, y+5, left, a.Color)
	dst.DrawText(x+utf8.RuneCountInString(left), y+5, "  vs  ")
	dst.DrawTextColor(x+utf8.RuneCountInString(left)+6, y+5, right, b.Color)

	dst.DrawTextCentered(y+7, "Click a column or use 1-7 to drop a disc", core.ColorGray)
}

// renderHUD draws the title, whose turn it is and the column cursor.
func (c *Controller) renderHUD(dst *core.Screen) {
	top := c.layout.Top
	dst.DrawTextCentered(top, "CONNECT FOUR", core.ColorBrightWhite)

	style := c.theme.Style(c.current)
	turn := fmt.Sprintf("Move %d  -  %s (%c) to play", c.moves+1, style.Name, style.Token)
	dst.DrawTextCentered(top+1, turn, style.Color)

	x, _ := c.layout.CellCenter(0, c.cursor)
	dst.SetCell(x, top+2, core.Cell{Rune: '▼', Color: style.Color})
}

// renderBoard draws the grid, the tokens and the column numbers.
func (c *Controller) renderBoard(dst *core.Screen) {
	bx, by := c.layout.Board.X, c.layout.Board.Y
	grid := c.theme.Grid

	for y := range board.Rows + 1 {
		for x := range board.Columns + 1 {
			px := bx + x*cellWidth
			py := by + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == board.Columns:
				corner = '┐'
			case y == board.Rows && x == 0:
				corner = '└'
			case y == board.Rows && x == board.Columns:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == board.Rows:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == board.Columns:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetCell(px, py, core.Cell{Rune: corner, Color: grid})

			if x < board.Columns {
				for i := 1; i < cellWidth; i++ {
					dst.SetCell(px+i, py, core.Cell{Rune: '─', Color: grid})
				}
			}
			if y < board.Rows {
				for i := 1; i < cellHeight; i++ {
					dst.SetCell(px, py+i, core.Cell{Rune: '│', Color: grid})
				}
			}
		}
	}

	highlight := c.state == StateFinished && c.winner.Valid() && c.theme.HighlightWin
	for row := range board.Rows {
		for col := range board.Columns {
			p, ok := c.board.Cell(row, col).Player()
			if !ok {
				continue
			}
			style := c.theme.Style(p)
			color := style.Color
			if highlight && c.line.Contains(row, col) {
				color = c.theme.Highlight
			}
			x, y := c.layout.CellCenter(row, col)
			dst.SetCell(x, y, core.Cell{Rune: style.Token, Color: color})
			if c.hasLast && c.last.Row == row && c.last.Col == col && c.state == StatePlaying {
				dst.SetCell(x-1, y, core.Cell{Rune: '[', Color: core.ColorGray})
				dst.SetCell(x+1, y, core.Cell{Rune: ']', Color: core.ColorGray})
			}
		}
	}

	numY := by + boardH
	for col := range board.Columns {
		x, _ := c.layout.CellCenter(0, col)
		dst.DrawTextColor(x, numY, strconv.Itoa(col+1), core.ColorGray)
	}
}

// renderResult replaces the HUD with the result so the final board,
// including the highlighted four, stays visible.
func (c *Controller) renderResult(dst *core.Screen) {
	top := c.layout.Top

	headline := "It's a draw!"
	color := core.ColorBrightWhite
	if c.winner.Valid() {
		style := c.theme.Style(c.winner)
		headline = fmt.Sprintf("Player %s wins!", style.Name)
		color = style.Color
	}
	dst.DrawTextCentered(top, fmt.Sprintf("%s  (%d moves)", headline, c.moves), color)
	dst.DrawTextCentered(top+1, "Press R to Restart or Q to Quit", core.ColorDefault)
}
