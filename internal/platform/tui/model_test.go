package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/game"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

type fakeRecorder struct {
	matches []storage.Match
	err     error
}

func (f *fakeRecorder) SaveMatch(m storage.Match) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.matches = append(f.matches, m)
	return int64(len(f.matches)), nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func newTestModel(rec Recorder, logger *log.Logger) Model {
	return NewModel(Options{
		Theme:    game.DefaultTheme(),
		Screen:   core.DefaultConfig(),
		Recorder: rec,
		Logger:   logger,
		Mouse:    true,
	})
}

// send feeds msgs one at a time and returns the model and the last command.
func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m, cmd
}

// verticalWin has A stack column 1 while B plays column 2.
var verticalWin = []tea.Msg{runes("1"), runes("2"), runes("1"), runes("2"), runes("1"), runes("2"), runes("1")}

func TestSpaceStartsGame(t *testing.T) {
	m := newTestModel(nil, nil)

	if !strings.Contains(m.View(), "Press SPACE to Start") {
		t.Fatalf("menu view missing start hint:\n%s", m.View())
	}

	m, _ = send(t, m, space)
	if got := m.Controller().State(); got != game.StatePlaying {
		t.Errorf("state = %v, expected playing", got)
	}
}

func TestDigitKeysDropTokens(t *testing.T) {
	m := newTestModel(nil, nil)
	m, _ = send(t, m, space, runes("4"), runes("4"), runes("7"))

	if got := m.Controller().Snapshot().Sequence; got != "336" {
		t.Errorf("sequence = %q, expected 336", got)
	}
	if got := m.Controller().Moves(); got != 3 {
		t.Errorf("moves = %d, expected 3", got)
	}
}

func TestMenuIgnoresDigits(t *testing.T) {
	m := newTestModel(nil, nil)
	m, _ = send(t, m, runes("1"), runes("r"), runes("q"))

	if got := m.Controller().State(); got != game.StateMenu {
		t.Errorf("state = %v, expected menu", got)
	}
	if m.Controller().Terminated() {
		t.Error("q on the menu must not quit")
	}
}

func TestFinishedMatchRecordedOnce(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(rec, nil)

	m, _ = send(t, m, space)
	m, cmd := send(t, m, verticalWin...)
	if cmd == nil {
		t.Fatal("expected a record command on the winning move")
	}
	if m.Controller().State() != game.StateFinished {
		t.Fatalf("state = %v, expected finished", m.Controller().State())
	}

	msg := cmd()
	saved, ok := msg.(matchSavedMsg)
	if !ok {
		t.Fatalf("record command returned %T", msg)
	}
	if saved.err != nil {
		t.Fatalf("save failed: %v", saved.err)
	}
	m, _ = send(t, m, msg)

	if len(rec.matches) != 1 {
		t.Fatalf("recorded %d matches, expected 1", len(rec.matches))
	}
	got := rec.matches[0]
	if got.Winner != "A" || got.Moves != 7 || got.Sequence != "0101010" {
		t.Errorf("match = %+v", got)
	}
	if got.PlayerA != "X" || got.PlayerB != "O" || got.Source != "local" {
		t.Errorf("players = %s/%s source = %q", got.PlayerA, got.PlayerB, got.Source)
	}
	if got.MatchID == "" || got.MatchID != saved.matchID {
		t.Errorf("match id = %q, saved msg id = %q", got.MatchID, saved.matchID)
	}

	// More input on the result screen must not record again.
	if _, cmd := send(t, m, runes("1"), space); cmd != nil {
		t.Error("unexpected command on the result screen")
	}
	if !strings.Contains(m.View(), "Player X wins!") {
		t.Errorf("result view missing winner:\n%s", m.View())
	}
}

func TestFailedSaveIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	rec := &fakeRecorder{err: errors.New("disk full")}
	m := newTestModel(rec, logger)

	m, _ = send(t, m, space)
	m, cmd := send(t, m, verticalWin...)
	m, _ = send(t, m, cmd())

	if !strings.Contains(buf.String(), "could not save match") || !strings.Contains(buf.String(), "disk full") {
		t.Errorf("log output missing save failure:\n%s", buf.String())
	}

	// Play continues: restart goes back to the menu.
	m, _ = send(t, m, runes("r"))
	if got := m.Controller().State(); got != game.StateMenu {
		t.Errorf("state after restart = %v, expected menu", got)
	}
}

func TestNoRecorder(t *testing.T) {
	m := newTestModel(nil, nil)
	m, _ = send(t, m, space)
	if _, cmd := send(t, m, verticalWin...); cmd != nil {
		t.Error("expected no record command without a recorder")
	}
}

func TestQuitFromResult(t *testing.T) {
	m := newTestModel(nil, nil)
	m, _ = send(t, m, space)
	m, _ = send(t, m, verticalWin...)

	m, cmd := send(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestCtrlCClosesFromAnyScreen(t *testing.T) {
	ctrlC := tea.KeyMsg{Type: tea.KeyCtrlC}
	setups := map[string][]tea.Msg{
		"menu":     nil,
		"playing":  {space, runes("3")},
		"finished": append([]tea.Msg{space}, verticalWin...),
	}

	for name, msgs := range setups {
		t.Run(name, func(t *testing.T) {
			m := newTestModel(nil, nil)
			m, _ = send(t, m, msgs...)
			m, cmd := send(t, m, ctrlC)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
			if !m.Controller().Terminated() {
				t.Error("controller should be terminated")
			}
		})
	}
}

func TestMouseDropsAndHovers(t *testing.T) {
	m := newTestModel(nil, nil)
	m, _ = send(t, m, space)

	l := m.Controller().Layout()
	x := l.Board.X + 2*4 + 2 // middle of column 2

	m, _ = send(t, m, tea.MouseMsg{X: x + 3*4, Y: l.Board.Y, Action: tea.MouseActionMotion})
	if got := m.Controller().Cursor(); got != 5 {
		t.Errorf("cursor after hover = %d, expected 5", got)
	}
	if m.Controller().Moves() != 0 {
		t.Error("hover must not drop")
	}

	m, _ = send(t, m, tea.MouseMsg{X: x, Y: l.Board.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if m.Controller().Moves() != 0 {
		t.Error("right click must not drop")
	}

	m, _ = send(t, m, tea.MouseMsg{X: x, Y: l.Board.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.Controller().Snapshot().Sequence; got != "2" {
		t.Errorf("sequence = %q, expected 2", got)
	}

	m, _ = send(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Controller().Moves() != 1 {
		t.Error("click left of the board must be ignored")
	}
}

func TestMouseDisabled(t *testing.T) {
	m := NewModel(Options{Theme: game.DefaultTheme(), Screen: core.DefaultConfig()})
	m, _ = send(t, m, space)

	l := m.Controller().Layout()
	m, _ = send(t, m, tea.MouseMsg{X: l.Board.X + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Controller().Moves() != 0 {
		t.Error("mouse input should be ignored when disabled")
	}
}

func TestKeyboardCursorDrop(t *testing.T) {
	m := newTestModel(nil, nil)
	m, _ = send(t, m, space,
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyLeft},
		space,
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	if got := m.Controller().Snapshot().Sequence; got != "12" {
		t.Errorf("sequence = %q, expected 12", got)
	}
}

func TestResizeShowsTooSmall(t *testing.T) {
	m := newTestModel(nil, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 20, Height: 8})

	if !strings.Contains(m.View(), "Window too small") {
		t.Errorf("expected too small notice:\n%s", m.View())
	}

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if !strings.Contains(m.View(), "Press SPACE to Start") {
		t.Errorf("expected menu after growing:\n%s", m.View())
	}
}

func TestHelpFooter(t *testing.T) {
	m := newTestModel(nil, nil)
	if !strings.Contains(m.View(), "start") {
		t.Errorf("menu footer missing start binding:\n%s", m.View())
	}

	m, _ = send(t, m, space)
	if !strings.Contains(m.View(), "drop") {
		t.Errorf("play footer missing drop binding:\n%s", m.View())
	}

	m, _ = send(t, m, runes("?"))
	if !strings.Contains(m.View(), "screenshot") {
		t.Errorf("full help missing screenshot binding:\n%s", m.View())
	}
}

func TestSessionSource(t *testing.T) {
	if got := SessionSource("alice"); got != "ssh:alice" {
		t.Errorf("SessionSource(alice) = %q", got)
	}
	if got := SessionSource(""); got != "ssh:anonymous" {
		t.Errorf("SessionSource(\"\") = %q", got)
	}
}
