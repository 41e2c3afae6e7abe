package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every subcommand
type Globals struct {
	LogLevel string `help:"Log level (debug, info, warn, error); overrides config" env:"SHOWDOWN_LOG_LEVEL"`
	Debug    bool   `help:"Enable debug logging"`
	NoColor  bool   `help:"Disable colored output" env:"NO_COLOR"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Server  ServerCmd        `cmd:"" help:"Run the table server"`
	Client  ClientCmd        `cmd:"" help:"Connect as an interactive player"`
	Eval    EvalCmd          `cmd:"" help:"Evaluate and compare five-card hands"`
}

func main() {
	// A missing .env is fine; values already in the environment win
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("showdown"),
		kong.Description("Three-seat card table server with a timed showdown"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
