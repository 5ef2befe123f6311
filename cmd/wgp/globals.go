package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/wolfgoatpig/internal/client"
	"github.com/lox/wolfgoatpig/internal/tui"
)

// Globals are flags shared by every command. They override the config
// file and environment.
type Globals struct {
	Config   string `short:"c" default:"wgp.hcl" help:"Path to HCL configuration file"`
	Server   string `short:"s" help:"Simulation server URL (overrides config)"`
	Player   string `short:"p" help:"Player name (overrides config)"`
	Course   string `help:"Course name (overrides config)"`
	LogLevel string `short:"l" help:"Log level: debug, info, warn, error (overrides config)"`
	LogFile  string `help:"Log file path (overrides config)"`
	Theme    string `help:"Colour theme: default, dark, light (overrides config)"`
	NoColor  bool   `help:"Disable colour output"`
}

// loadConfig reads the config file and applies the flag overrides
func (g *Globals) loadConfig() (*client.ClientConfig, error) {
	cfg, err := client.LoadClientConfig(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if g.Server != "" {
		cfg.Server.URL = strings.TrimSpace(g.Server)
	}
	if g.Player != "" {
		cfg.Player.Name = strings.TrimSpace(g.Player)
	}
	if g.Course != "" {
		cfg.Course = g.Course
	}
	if g.LogLevel != "" {
		cfg.UI.LogLevel = g.LogLevel
	}
	if g.LogFile != "" {
		cfg.UI.LogFile = g.LogFile
	}
	if g.Theme != "" {
		cfg.UI.Theme = g.Theme
	}
	if g.NoColor {
		cfg.UI.NoColor = true
	}
	return cfg, nil
}

// newLogger builds the process logger writing to w
func newLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
}

// openLogFile opens the TUI log file so logging never draws over the screen
func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

func applyUI(cfg *client.ClientConfig) {
	if cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	tui.SetTheme(cfg.UI.Theme)
}
