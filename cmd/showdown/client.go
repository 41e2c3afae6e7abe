package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/showdown/cmd/showdown/shared"
	"github.com/lox/showdown/internal/client"
)

const clientHelp = `Commands:
  join [name]   take a seat
  bet <amount>  add to your bet
  next          pass the turn
  state         show the table
  quit          leave`

// ClientCmd connects to a server as an interactive player
type ClientCmd struct {
	Server string `default:"http://localhost:3000" env:"SHOWDOWN_SERVER" help:"Server URL"`
	Name   string `help:"Display name (defaults to $USER or \"Player\")"`
}

func (c *ClientCmd) Run(globals *Globals) error {
	level := globals.LogLevel
	if level == "" {
		level = "warn"
	}
	logger, err := shared.SetupLogger(level, globals.Debug)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = "Player"
	}

	ctx := shared.SetupSignalHandler(logger)
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cl, err := client.Dial(dialCtx, c.Server, logger)
	if err != nil {
		return err
	}
	if err := cl.Join(name); err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Connected as %s", name)))
	fmt.Println(infoStyle.Render(clientHelp))

	return runSession(ctx, cl, os.Stdin, os.Stdout, name, logger)
}

// runSession pumps server events to out and commands from in until either
// side closes
func runSession(ctx context.Context, cl *client.Client, in io.Reader, out io.Writer, name string, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return cl.Run(gctx) })

	g.Go(func() error {
		for msg := range cl.Events() {
			text, err := renderMessage(msg, cl.PlayerID())
			if err != nil {
				logger.Warn("Failed to render message", "type", msg.Type, "error", err)
				continue
			}
			_, _ = fmt.Fprintln(out, text)
		}
		cancel()
		return nil
	})

	// Reading stdin cannot be interrupted, so it feeds the group through a
	// channel instead of running inside it.
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-gctx.Done():
				return
			}
		}
	}()

	g.Go(func() error {
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					cancel()
					return nil
				}
				quit, err := runCommand(cl, out, line, name)
				if err != nil {
					_, _ = fmt.Fprintln(out, errorStyle.Render(err.Error()))
				}
				if quit {
					cancel()
					return nil
				}
			case <-gctx.Done():
				return nil
			}
		}
	})

	return g.Wait()
}

// runCommand executes one input line. It reports whether the user quit.
func runCommand(cl *client.Client, out io.Writer, line, name string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "join", "j":
		if len(fields) > 1 {
			name = strings.Join(fields[1:], " ")
		}
		return false, cl.Join(name)
	case "bet", "b":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: bet <amount>")
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, fmt.Errorf("invalid amount %q", fields[1])
		}
		return false, cl.Bet(amount)
	case "next", "n":
		return false, cl.AdvanceTurn()
	case "state", "s":
		return false, cl.RequestState()
	case "help", "h", "?":
		_, _ = fmt.Fprintln(out, infoStyle.Render(clientHelp))
		return false, nil
	case "quit", "q", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, type help", fields[0])
	}
}
