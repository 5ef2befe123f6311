package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals `embed:""`

	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Play        PlayCmd          `cmd:"" default:"1" help:"Play a round in the terminal"`
	Auto        AutoCmd          `cmd:"" help:"Play a round headless with an autopilot policy"`
	CheckConfig CheckConfigCmd   `cmd:"check-config" help:"Load, validate and print the effective configuration"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("wgp"),
		kong.Description("Wolf Goat Pig golf betting game client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
