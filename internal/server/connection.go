package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/showdown/internal/game"
	"github.com/lox/showdown/internal/protocol"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Outbound messages buffered per connection before it is dropped
	sendBufferSize = 64
)

// ErrConnectionClosed is returned when sending on a closed or saturated connection
var ErrConnectionClosed = errors.New("connection closed")

// Connection is one WebSocket client. Its ID doubles as the player ID.
type Connection struct {
	id        string
	conn      *websocket.Conn
	send      chan *protocol.Message
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(id string, conn *websocket.Conn, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		id:     id,
		conn:   conn,
		send:   make(chan *protocol.Message, sendBufferSize),
		server: server,
		logger: server.logger.WithPrefix("conn").With("player", id),
		ctx:    ctx,
		cancel: cancel,
	}
}

// ID returns the connection's player ID
func (c *Connection) ID() string {
	return c.id
}

// Done is closed once the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message without blocking. A connection whose buffer
// is full is closed rather than allowed to stall the table.
func (c *Connection) SendMessage(msg *protocol.Message) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrConnectionClosed
	}

	select {
	case c.send <- msg:
		c.mu.Unlock()
		return nil
	default:
		c.mu.Unlock()
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg protocol.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage routes a client message to the table
func (c *Connection) handleMessage(msg *protocol.Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case protocol.TypeJoin:
		var data protocol.JoinData
		if err := msg.Decode(&data); err != nil {
			c.sendError(protocol.CodeInvalidMessage, "Failed to parse join data")
			return
		}
		c.act(func(t *game.Table) error { return t.Join(c.id, data.PlayerName) })

	case protocol.TypePlaceBet:
		var data protocol.PlaceBetData
		if err := msg.Decode(&data); err != nil {
			c.sendError(protocol.CodeInvalidMessage, "Failed to parse bet data")
			return
		}
		c.act(func(t *game.Table) error { return t.PlaceBet(c.id, data.Amount) })

	case protocol.TypeAdvanceTurn:
		c.act(func(t *game.Table) error { return t.AdvanceTurn(c.id) })

	case protocol.TypeRequestState:
		c.act(func(t *game.Table) error {
			t.RequestState(c.id)
			return nil
		})

	default:
		c.sendError(protocol.CodeUnknownMessageType, "Unknown message type: "+msg.Type.String())
	}
}

// act runs fn on the table loop and reports a rejection to this client only
func (c *Connection) act(fn func(*game.Table) error) {
	err := c.server.loop.Do(c.ctx, fn)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, game.ErrLoopStopped) {
		return
	}

	c.logger.Warn("Action rejected", "error", err)
	c.sendError(errorCode(err), err.Error())
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := protocol.NewMessage(protocol.TypeError, protocol.ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

func errorCode(err error) string {
	var betErr *game.InvalidBetError
	switch {
	case errors.As(err, &betErr):
		return protocol.CodeInvalidBet
	case errors.Is(err, game.ErrGameInProgress):
		return protocol.CodeGameInProgress
	case errors.Is(err, game.ErrNotSeated):
		return protocol.CodeNotSeated
	case errors.Is(err, game.ErrNotBetting):
		return protocol.CodeNotBetting
	case errors.Is(err, game.ErrAlreadySeated):
		return protocol.CodeAlreadySeated
	case errors.Is(err, game.ErrInvalidName):
		return protocol.CodeInvalidName
	default:
		return protocol.CodeInternal
	}
}
