package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on this terminal",
	Long: `Start a two-player game on this terminal.

Controls:
  Space/Enter     - Start (menu), drop at cursor (playing)
  Left/Right, h/l - Move the column cursor
  1-7             - Drop in that column
  Mouse           - Click a column to drop, hover to move the cursor
  R               - Restart (after a game)
  Q               - Quit (after a game)
  Ctrl+C          - Exit at any time
  ?               - Toggle full help

Examples:
  connect4 play
  connect4 play --db ./history.db
  connect4 play --config ./my-connect4.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	// The UI owns the terminal, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			defer f.Close()
			logOut = f
		}
	}
	logger := newLogger(logOut, cfg, "connect4")

	// Get terminal size
	screen := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		screen.ScreenW = w
		screen.ScreenH = h
	}

	store := openStore(cfg, logger)
	if store == nil && !cfg.Storage.Disabled {
		fmt.Fprintln(os.Stderr, "Warning: could not open history database, matches will not be recorded")
	}

	opts := tui.Options{
		Theme:  cfg.Theme(),
		Screen: screen,
		Logger: logger,
		Source: "local",
		Mouse:  cfg.Display.Mouse,
	}
	if store != nil {
		opts.Recorder = store
	}

	logger.Info("starting game", "config", cfg.Source, "width", screen.ScreenW, "height", screen.ScreenH)
	runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
