package client

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/wolfgoatpig/internal/game"
)

// ClientConfig represents the complete client configuration
type ClientConfig struct {
	Course    string           `hcl:"course,optional"`
	Server    ServerConnection `hcl:"server,block"`
	Player    PlayerSettings   `hcl:"player,block"`
	Opponents []OpponentConfig `hcl:"opponent,block"`
	UI        UISettings       `hcl:"ui,block"`
	Feed      *FeedSettings    `hcl:"feed,block"`
}

// ServerConnection contains simulation server settings
type ServerConnection struct {
	URL            string `hcl:"url"`
	RequestTimeout int    `hcl:"request_timeout,optional"`
	PollInterval   int    `hcl:"poll_interval,optional"`
}

// PlayerSettings describes the local participant
type PlayerSettings struct {
	Name     string  `hcl:"name"`
	Handicap float64 `hcl:"handicap,optional"`
}

// OpponentConfig describes one automated opponent
type OpponentConfig struct {
	Name        string  `hcl:"name,label"`
	Handicap    float64 `hcl:"handicap"`
	Personality string  `hcl:"personality,optional"`
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	Theme    string `hcl:"theme,optional"`
	NoColor  bool   `hcl:"no_color,optional"`
}

// FeedSettings enables the WebSocket state feed
type FeedSettings struct {
	Address string `hcl:"address"`
}

// EnvOverrides are read from the environment after the file is loaded
type EnvOverrides struct {
	ServerURL  string `env:"WGP_SERVER_URL"`
	PlayerName string `env:"WGP_PLAYER_NAME"`
	LogLevel   string `env:"WGP_LOG_LEVEL"`
	Course     string `env:"WGP_COURSE"`
}

// DefaultClientConfig returns default client configuration
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Course: "Wing Point Golf & Country Club",
		Server: ServerConnection{
			URL:            "http://localhost:8000",
			RequestTimeout: 30,
			PollInterval:   2,
		},
		Player: PlayerSettings{
			Name:     "",
			Handicap: 18,
		},
		Opponents: []OpponentConfig{
			{Name: "Bob", Handicap: 10.5, Personality: "balanced"},
			{Name: "Scott", Handicap: 15, Personality: "aggressive"},
			{Name: "Vince", Handicap: 8, Personality: "conservative"},
		},
		UI: UISettings{
			LogLevel: "warn",
			LogFile:  "wgp.log",
			Theme:    "default",
		},
	}
}

// LoadClientConfig loads client configuration from an HCL file and applies
// environment overrides. A missing file yields the defaults.
func LoadClientConfig(filename string) (*ClientConfig, error) {
	config, err := loadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadFile(filename string) (*ClientConfig, error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultClientConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ClientConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultClientConfig()

	if config.Course == "" {
		config.Course = defaults.Course
	}
	if config.Server.URL == "" {
		config.Server.URL = defaults.Server.URL
	}
	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = defaults.Server.RequestTimeout
	}
	if config.Server.PollInterval == 0 {
		config.Server.PollInterval = defaults.Server.PollInterval
	}
	if len(config.Opponents) == 0 {
		config.Opponents = defaults.Opponents
	}
	if config.UI.LogLevel == "" {
		config.UI.LogLevel = defaults.UI.LogLevel
	}
	if config.UI.LogFile == "" {
		config.UI.LogFile = defaults.UI.LogFile
	}
	if config.UI.Theme == "" {
		config.UI.Theme = defaults.UI.Theme
	}

	return &config, nil
}

// ApplyEnv overlays non-empty environment overrides onto the config
func (c *ClientConfig) ApplyEnv() error {
	var overrides EnvOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if overrides.ServerURL != "" {
		c.Server.URL = overrides.ServerURL
	}
	if overrides.PlayerName != "" {
		c.Player.Name = overrides.PlayerName
	}
	if overrides.LogLevel != "" {
		c.UI.LogLevel = overrides.LogLevel
	}
	if overrides.Course != "" {
		c.Course = overrides.Course
	}
	return nil
}

// Validate validates the client configuration
func (c *ClientConfig) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server URL is required")
	}

	if c.Player.Name == "" {
		return fmt.Errorf("player name is required")
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	if c.Server.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}

	if c.Feed != nil && c.Feed.Address == "" {
		return fmt.Errorf("feed address is required when the feed block is present")
	}

	if err := game.ValidateSetup(c.Human(), c.SetupOpponents()); err != nil {
		return err
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	// Validate theme
	validThemes := map[string]bool{
		"default": true,
		"dark":    true,
		"light":   true,
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}

	return nil
}

// Human returns the local participant as a setup entry
func (c *ClientConfig) Human() game.SetupPlayer {
	return game.SetupPlayer{Name: c.Player.Name, Handicap: c.Player.Handicap}
}

// SetupOpponents returns the opponents as setup entries
func (c *ClientConfig) SetupOpponents() []game.SetupPlayer {
	out := make([]game.SetupPlayer, 0, len(c.Opponents))
	for _, o := range c.Opponents {
		out = append(out, game.SetupPlayer{Name: o.Name, Handicap: o.Handicap, Personality: o.Personality})
	}
	return out
}

// RequestTimeout returns the HTTP timeout
func (c *ClientConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeout) * time.Second
}

// PollInterval returns the poker-state polling interval
func (c *ClientConfig) PollInterval() time.Duration {
	return time.Duration(c.Server.PollInterval) * time.Second
}

// GetLogLevel returns the log level
func (c *ClientConfig) GetLogLevel() string {
	return c.UI.LogLevel
}

// GetServerURL returns the server URL
func (c *ClientConfig) GetServerURL() string {
	return c.Server.URL
}
