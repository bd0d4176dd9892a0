package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-connect4/internal/board"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

// History layout constants
const (
	minWidthForBoard = 80 // Minimum width to show the selected match's board
	boardPaneWidth   = 22
	historyChrome    = 9 // Title, tally, borders and help
)

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Top  key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Top, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "newest"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded matches.
type HistoryModel struct {
	matches   []storage.Match
	tally     storage.Tally
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	showBoard bool
	quitting  bool
}

// NewHistoryModel creates a history browser over already loaded matches.
func NewHistoryModel(matches []storage.Match, tally storage.Tally, width, height int) HistoryModel {
	m := HistoryModel{
		matches:   matches,
		tally:     tally,
		keys:      DefaultHistoryKeyMap(),
		help:      help.New(),
		width:     width,
		height:    height,
		showBoard: width >= minWidthForBoard,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table sized for the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Date", Width: 12},
		{Title: "Result", Width: 14},
		{Title: "Moves", Width: 5},
		{Title: "Source", Width: 12},
	}

	// Give spare width to the result column
	tableWidth := m.width - 6
	if m.showBoard {
		tableWidth -= boardPaneWidth + 2
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := tableWidth - used; extra > 0 {
		columns[2].Width += min(extra, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-historyChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the loaded matches.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.matches))
	for i, match := range m.matches {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			match.CreatedAt.Format("Jan 02 15:04"),
			ResultText(match),
			strconv.Itoa(match.Moves),
			match.Source,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// ResultText describes how a match ended, e.g. "X won" or "draw".
func ResultText(m storage.Match) string {
	if m.Draw() {
		return "draw"
	}
	return m.WinnerName() + " won"
}

// TallyText summarises a tally on one line.
func TallyText(t storage.Tally, nameA, nameB string) string {
	if t.Games == 0 {
		return "No matches recorded yet."
	}
	return fmt.Sprintf("%d games  %s %d  %s %d  draws %d  last %s",
		t.Games, nameA, t.WinsA, nameB, t.WinsB, t.Draws, t.LastPlayed.Format("Jan 02 15:04"))
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showBoard = m.width >= minWidthForBoard
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the highlighted match, if any.
func (m HistoryModel) Selected() (storage.Match, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.matches) {
		return storage.Match{}, false
	}
	return m.matches[i], true
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("MATCH HISTORY", m.width)))
	b.WriteString("\n")

	nameA, nameB := "A", "B"
	if len(m.matches) > 0 {
		nameA, nameB = m.matches[0].PlayerA, m.matches[0].PlayerB
	}
	tallyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(tallyStyle.Render(centerText(TallyText(m.tally, nameA, nameB), m.width)))
	b.WriteString("\n\n")

	paneStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := paneStyle.Render(m.renderTableContent())
	if m.showBoard {
		if match, ok := m.Selected(); ok {
			boardPane := paneStyle.Width(boardPaneWidth).Render(renderMiniBoard(match))
			content = lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", boardPane)
		}
	}
	b.WriteString(content)

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.matches) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No matches recorded yet.\nFinish a game to see it here!")
	}

	return m.table.View()
}

// renderMiniBoard draws the final position of a match, one rune per cell.
func renderMiniBoard(match storage.Match) string {
	b, err := board.Parse(match.Board)
	if err != nil {
		return "board unavailable"
	}

	tokens := map[board.Cell]string{board.Empty: "·", board.CellA: "X", board.CellB: "O"}
	var sb strings.Builder
	for row := range board.Rows {
		for col := range board.Columns {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(tokens[b.Cell(row, col)])
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("1 2 3 4 5 6 7\n\n")
	fmt.Fprintf(&sb, "X %s  O %s\n", match.PlayerA, match.PlayerB)
	sb.WriteString(ResultText(match))
	return sb.String()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}

// RunHistory runs the history browser until the user quits.
func RunHistory(matches []storage.Match, tally storage.Tally, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(matches, tally, width, height),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
