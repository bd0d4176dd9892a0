// Package config provides YAML-based configuration loading for connect4:
// player names and tokens, display colors, storage, the SSH server and logging.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/game"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete connect4 configuration.
type Config struct {
	Players PlayersConfig `yaml:"players"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`

	// Source is where the config was loaded from ("embedded" or a file path).
	Source string `yaml:"-"`
}

// PlayersConfig names and styles the two sides.
type PlayersConfig struct {
	A PlayerConfig `yaml:"a"`
	B PlayerConfig `yaml:"b"`
}

// PlayerConfig is one side's label, board token and color.
type PlayerConfig struct {
	Name  string `yaml:"name"`
	Token string `yaml:"token"` // Exactly one rune
	Color string `yaml:"color"`
}

// DisplayConfig controls board rendering and input.
type DisplayConfig struct {
	Grid         string `yaml:"grid"`
	Highlight    string `yaml:"highlight"`
	HighlightWin bool   `yaml:"highlight_win"`
	Mouse        bool   `yaml:"mouse"`
}

// StorageConfig locates the match history database.
type StorageConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// ServerConfig configures `connect4 serve`.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Interactive play only; empty discards
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Players: PlayersConfig{
			A: PlayerConfig{Name: "X", Token: "X", Color: "bright-red"},
			B: PlayerConfig{Name: "O", Token: "O", Color: "bright-yellow"},
		},
		Display: DisplayConfig{
			Grid:         "blue",
			Highlight:    "bright-green",
			HighlightWin: true,
			Mouse:        true,
		},
		Storage: StorageConfig{
			Path: "~/.connect4/history.db",
		},
		Server: ServerConfig{
			Address:     ":23234",
			HostKeyPath: "~/.connect4/host_key",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
		Source: "default",
	}
}

// Validate checks that the configuration can be used.
func (c Config) Validate() error {
	a, b := c.Players.A, c.Players.B
	if a.Name == "" || b.Name == "" {
		return fmt.Errorf("%w: player names must not be empty", ErrInvalid)
	}
	if a.Name == b.Name {
		return fmt.Errorf("%w: player names must differ, both are %q", ErrInvalid, a.Name)
	}
	for _, p := range []PlayerConfig{a, b} {
		if utf8.RuneCountInString(p.Token) != 1 {
			return fmt.Errorf("%w: token for %s must be a single character, got %q", ErrInvalid, p.Name, p.Token)
		}
		if _, err := core.ParseColor(p.Color); err != nil {
			return fmt.Errorf("%w: player %s: %v", ErrInvalid, p.Name, err)
		}
	}
	if a.Token == b.Token {
		return fmt.Errorf("%w: player tokens must differ, both are %q", ErrInvalid, a.Token)
	}

	if _, err := core.ParseColor(c.Display.Grid); err != nil {
		return fmt.Errorf("%w: display.grid: %v", ErrInvalid, err)
	}
	if _, err := core.ParseColor(c.Display.Highlight); err != nil {
		return fmt.Errorf("%w: display.highlight: %v", ErrInvalid, err)
	}

	if !c.Storage.Disabled && c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path is required unless storage is disabled", ErrInvalid)
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("%w: server.idle_timeout must not be negative", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// Theme converts the player and display settings to a game theme.
// Call Validate first; unknown colors fall back to the terminal default.
func (c Config) Theme() game.Theme {
	color := func(name string) core.Color {
		col, _ := core.ParseColor(name)
		return col
	}
	token := func(s string) rune {
		r, _ := utf8.DecodeRuneInString(s)
		return r
	}

	return game.Theme{
		A: game.PlayerStyle{
			Name:  c.Players.A.Name,
			Token: token(c.Players.A.Token),
			Color: color(c.Players.A.Color),
		},
		B: game.PlayerStyle{
			Name:  c.Players.B.Name,
			Token: token(c.Players.B.Token),
			Color: color(c.Players.B.Color),
		},
		Grid:         color(c.Display.Grid),
		Highlight:    color(c.Display.Highlight),
		HighlightWin: c.Display.HighlightWin,
	}
}
