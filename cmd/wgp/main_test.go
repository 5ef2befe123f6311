package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/wolfgoatpig/internal/game"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("wgp"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wgp.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
course = "Pebble Beach"

server {
  url = "http://sim.example:8000"
}

player {
  name     = "Stuart"
  handicap = 12
}

ui {}
`), 0o644))

	cli, _ := parse(t, "--config", path, "--player", " Stu ", "--log-level", "debug", "--no-color", "check-config")
	cfg, err := cli.loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "Pebble Beach", cfg.Course)
	assert.Equal(t, "http://sim.example:8000", cfg.Server.URL)
	assert.Equal(t, "Stu", cfg.Player.Name)
	assert.Equal(t, 12.0, cfg.Player.Handicap)
	assert.Equal(t, "debug", cfg.UI.LogLevel)
	assert.True(t, cfg.UI.NoColor)
}

func TestDefaultCommandIsPlay(t *testing.T) {
	_, ctx := parse(t)
	assert.Equal(t, "play", ctx.Command())
}

func TestAutoPolicyFlag(t *testing.T) {
	cli, ctx := parse(t, "auto", "--policy", "aggressive", "--delay", "250ms")
	assert.Equal(t, "auto", ctx.Command())
	assert.Equal(t, "aggressive", cli.Auto.Policy)
	assert.Equal(t, "250ms", cli.Auto.Delay.String())

	var bad CLI
	parser, err := kong.New(&bad, kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"auto", "--policy", "reckless"})
	assert.Error(t, err)
}

func TestPrintStandings(t *testing.T) {
	s := game.NewTestSession()
	s.RoundComplete = true
	s.Players[0].Points = -4
	s.Players[1].Points = 6
	s.Players[2].Points = 2
	s.Players[3].Points = -4

	var buf bytes.Buffer
	printStandings(&buf, s)
	out := buf.String()

	assert.Contains(t, out, "Wing Point final standings")
	assert.Regexp(t, `1\. Bob\s+\+6 quarters`, out)
	assert.Regexp(t, `2\. Scott\s+\+2 quarters`, out)
	assert.Regexp(t, `3\. You\s+-4 quarters`, out)
	assert.Contains(t, out, "session test-session")
}

func TestWriteSummary(t *testing.T) {
	s := game.NewTestSession()
	s.RoundComplete = true
	path := filepath.Join(t.TempDir(), "round.json")

	require.NoError(t, writeSummary(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "test-session"`)
	assert.Contains(t, string(data), `"round_complete": true`)
}
