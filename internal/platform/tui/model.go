// Package tui runs the Connect Four controller in a terminal through Bubble
// Tea, locally or over SSH, and browses the recorded match history.
package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/game"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

// footerHeight is the space reserved below the board for the help line.
const footerHeight = 1

// Recorder persists finished matches. *storage.Store implements it.
type Recorder interface {
	SaveMatch(m storage.Match) (int64, error)
}

// Options configures a game session.
type Options struct {
	Theme    game.Theme
	Screen   core.RuntimeConfig
	Recorder Recorder           // Nil disables match history
	Logger   *log.Logger        // Nil discards
	Renderer *lipgloss.Renderer // Nil uses the default renderer
	Source   string             // Recorded with each match; "local" when empty
	Mouse    bool
}

// matchSavedMsg reports the result of recording a finished match.
type matchSavedMsg struct {
	matchID string
	err     error
}

// Model is the Bubble Tea model for one Connect Four session.
type Model struct {
	ctrl     *game.Controller
	screen   *core.Screen
	palette  palette
	keys     KeyMap
	help     help.Model
	recorder Recorder
	logger   *log.Logger
	theme    game.Theme
	source   string
	mouse    bool
	started  time.Time
	quitting bool
}

// NewModel creates a session on the menu screen.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	pal := defaultPalette
	if opts.Renderer != nil {
		pal = newPalette(opts.Renderer)
	}
	source := opts.Source
	if source == "" {
		source = "local"
	}

	cfg := opts.Screen
	h := help.New()
	h.Width = cfg.ScreenW
	screenH := core.Max(cfg.ScreenH-footerHeight, 0)

	return Model{
		ctrl:     game.NewController(opts.Theme, core.RuntimeConfig{ScreenW: cfg.ScreenW, ScreenH: screenH}),
		screen:   core.NewScreen(cfg.ScreenW, screenH),
		palette:  pal,
		keys:     DefaultKeyMap(),
		help:     h,
		recorder: opts.Recorder,
		logger:   logger,
		theme:    opts.Theme,
		source:   source,
		mouse:    opts.Mouse,
	}
}

// Controller exposes the game state, mainly for tests.
func (m Model) Controller() *game.Controller {
	return m.ctrl
}

// Init implements tea.Model. The game is event driven, so nothing is scheduled.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		screenH := core.Max(msg.Height-footerHeight, 0)
		m.screen.Resize(msg.Width, screenH)
		m.ctrl.Resize(msg.Width, screenH)
		m.help.Width = msg.Width
		return m, nil

	case matchSavedMsg:
		if msg.err != nil {
			m.logger.Warn("could not save match", "match", msg.matchID, "error", msg.err)
		} else {
			m.logger.Debug("match saved", "match", msg.matchID)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	ev, ok := m.keys.Event(msg, m.ctrl.State())
	if !ok {
		return m, nil
	}
	return m.dispatch(ev)
}

// handleMouse maps a left press to a drop and motion to the cursor.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse {
		return m, nil
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.dispatch(core.PointerEvent(msg.X, msg.Y))
	case msg.Action == tea.MouseActionMotion:
		return m.dispatch(core.HoverEvent(msg.X, msg.Y))
	}
	return m, nil
}

// dispatch feeds ev to the controller and reacts to screen transitions.
func (m Model) dispatch(ev core.Event) (tea.Model, tea.Cmd) {
	before := m.ctrl.State()
	if !m.ctrl.Handle(ev) {
		return m, nil
	}

	if m.ctrl.Terminated() {
		m.quitting = true
		m.logger.Debug("session closed", "state", before)
		return m, tea.Quit
	}

	after := m.ctrl.State()
	switch {
	case before == game.StateMenu && after == game.StatePlaying:
		m.started = time.Now()
		m.logger.Debug("game started")
	case before == game.StatePlaying && after == game.StateFinished:
		snap := m.ctrl.Snapshot()
		m.logger.Info("game finished", "winner", snap.Winner, "moves", snap.Moves)
		return m, m.recordCmd(snap)
	}
	return m, nil
}

// recordCmd saves the finished game in the background.
func (m Model) recordCmd(snap game.Snapshot) tea.Cmd {
	if m.recorder == nil {
		return nil
	}

	match := storage.Match{
		MatchID:  uuid.NewString(),
		PlayerA:  m.theme.A.Name,
		PlayerB:  m.theme.B.Name,
		Winner:   snap.Winner,
		Moves:    snap.Moves,
		Sequence: snap.Sequence,
		Board:    snap.Board,
		Source:   m.source,
	}
	if !m.started.IsZero() {
		match.Duration = int(time.Since(m.started).Seconds())
	}

	rec := m.recorder
	return func() tea.Msg {
		_, err := rec.SaveMatch(match)
		return matchSavedMsg{matchID: match.MatchID, err: err}
	}
}

// saveScreenshot saves the current screen as plain text.
func (m Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	m.ctrl.Render(m.screen)

	dir := filepath.Join(home, ".connect4", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	filename := fmt.Sprintf("connect4_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.ctrl.Render(m.screen)
	footer := m.help.View(screenHelp{keys: m.keys, state: m.ctrl.State()})
	return m.palette.render(m.screen) + "\n" + helpStyle.Render(footer)
}

// Run starts the Bubble Tea program and blocks until the session ends.
func Run(opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(NewModel(opts), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
