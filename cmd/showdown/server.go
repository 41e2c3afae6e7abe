package main

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/lox/showdown/cmd/showdown/shared"
	"github.com/lox/showdown/internal/server"
)

// ServerCmd runs the table server. Flags override the config file.
type ServerCmd struct {
	Config        string         `short:"c" default:"showdown.hcl" env:"SHOWDOWN_CONFIG" help:"Path to HCL configuration file"`
	Addr          string         `short:"a" env:"SHOWDOWN_ADDR" help:"Address to listen on as host:port (overrides config)"`
	Seed          *int64         `env:"SHOWDOWN_SEED" help:"Deterministic shuffle seed (overrides config)"`
	ShowdownDelay *time.Duration `env:"SHOWDOWN_DELAY" help:"Time from the first bet to the showdown (overrides config)"`
	RevealHands   bool           `help:"Send every player's hole cards to everyone when dealing"`
}

func (c *ServerCmd) Run(globals *Globals) error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := c.applyOverrides(cfg, globals); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := shared.SetupLogger(cfg.Server.LogLevel, globals.Debug)
	if err != nil {
		return err
	}

	rules := cfg.TableRules()
	logger.Info("Starting showdown server",
		"addr", cfg.ListenAddress(),
		"showdown_delay", rules.ShowdownDelay,
		"reveal_hands", rules.RevealHands,
		"seed", cfg.Table.Seed)

	ctx := shared.SetupSignalHandler(logger)
	return server.NewServer(logger, cfg).Run(ctx)
}

func (c *ServerCmd) applyOverrides(cfg *server.Config, globals *Globals) error {
	if c.Addr != "" {
		host, port, err := net.SplitHostPort(c.Addr)
		if err != nil {
			return fmt.Errorf("invalid address %q: %w", c.Addr, err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", port, err)
		}
		if host != "" {
			cfg.Server.Address = host
		}
		cfg.Server.Port = p
	}
	if globals.LogLevel != "" {
		cfg.Server.LogLevel = globals.LogLevel
	}
	if c.Seed != nil {
		cfg.Table.Seed = *c.Seed
	}
	if c.ShowdownDelay != nil {
		cfg.Table.ShowdownDelay = c.ShowdownDelay.String()
	}
	if c.RevealHands {
		cfg.Table.RevealHands = true
	}
	return nil
}
