package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/showdown/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
	bufferSize = 256
)

// ErrClosed is returned when sending on a closed client
var ErrClosed = errors.New("client closed")

// Client is a WebSocket connection to a table server
type Client struct {
	conn     *websocket.Conn
	playerID string
	send     chan *protocol.Message
	events   chan *protocol.Message
	logger   *log.Logger

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

// WebSocketURL converts an http(s) or ws(s) server address to its /ws endpoint
func WebSocketURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = "/ws"
	return u.String(), nil
}

// Dial connects to the server and waits for its welcome message
func Dial(ctx context.Context, server string, logger *log.Logger) (*Client, error) {
	wsURL, err := WebSocketURL(server)
	if err != nil {
		return nil, err
	}

	logger = logger.WithPrefix("client")
	logger.Info("Connecting to server", "url", wsURL)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}
	var welcome protocol.Message
	if err := conn.ReadJSON(&welcome); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to read welcome: %w", err)
	}
	_ = conn.SetReadDeadline(time.Time{})

	var data protocol.WelcomeData
	if welcome.Type != protocol.TypeWelcome {
		_ = conn.Close()
		return nil, fmt.Errorf("expected %s, got %s", protocol.TypeWelcome, welcome.Type)
	}
	if err := welcome.Decode(&data); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to decode welcome: %w", err)
	}

	logger.Info("Connected to server", "player", data.PlayerID)

	return &Client{
		conn:     conn,
		playerID: data.PlayerID,
		send:     make(chan *protocol.Message, bufferSize),
		events:   make(chan *protocol.Message, bufferSize),
		logger:   logger.With("player", data.PlayerID),
	}, nil
}

// PlayerID returns the ID the server assigned to this connection
func (c *Client) PlayerID() string {
	return c.playerID
}

// Events returns server messages in arrival order. The channel is closed
// when Run returns.
func (c *Client) Events() <-chan *protocol.Message {
	return c.events
}

// Run pumps messages until the connection drops or ctx is cancelled
func (c *Client) Run(ctx context.Context) error {
	defer close(c.events)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.readPump(gctx) })
	g.Go(func() error { return c.writePump(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		_ = c.Close()
		return nil
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

// Close shuts the connection down
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		err = c.conn.Close()
	})
	return err
}

// Join asks for a seat
func (c *Client) Join(name string) error {
	return c.sendMessage(protocol.TypeJoin, protocol.JoinData{PlayerName: name})
}

// Bet adds amount to this player's bet
func (c *Client) Bet(amount int) error {
	return c.sendMessage(protocol.TypePlaceBet, protocol.PlaceBetData{Amount: amount})
}

// AdvanceTurn passes the turn to the next seat
func (c *Client) AdvanceTurn() error {
	return c.sendMessage(protocol.TypeAdvanceTurn, nil)
}

// RequestState asks for a state snapshot
func (c *Client) RequestState() error {
	return c.sendMessage(protocol.TypeRequestState, nil)
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) sendMessage(typ protocol.MessageType, data any) error {
	msg, err := protocol.NewMessage(typ, data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	select {
	case c.send <- msg:
		return nil
	default:
		return fmt.Errorf("send buffer full")
	}
}

func (c *Client) readPump(ctx context.Context) error {
	for {
		var msg protocol.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if c.isClosed() || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return ErrClosed
			}
			return fmt.Errorf("read: %w", err)
		}

		c.logger.Debug("Received message", "type", msg.Type)

		select {
		case c.events <- &msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Client) writePump(ctx context.Context) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return fmt.Errorf("write %s: %w", msg.Type, err)
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return fmt.Errorf("ping: %w", err)
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
