package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/showdown/internal/deck"
	"github.com/lox/showdown/internal/game"
	"github.com/lox/showdown/internal/protocol"
)

const (
	shutdownTimeout   = 5 * time.Second
	disconnectTimeout = 5 * time.Second
)

// Server hosts the table over WebSocket. It implements game.Broadcaster,
// turning table events into protocol messages.
type Server struct {
	cfg         *Config
	logger      *log.Logger
	upgrader    websocket.Upgrader
	clock       quartz.Clock
	rng         *rand.Rand
	table       *game.Table
	loop        *game.Loop
	stats       *TableStats
	connections map[string]*Connection
	mu          sync.RWMutex
}

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used for the showdown timer
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithRNG sets the shuffle source, overriding any configured seed
func WithRNG(rng *rand.Rand) Option {
	return func(s *Server) { s.rng = rng }
}

// NewServer creates a server with a single idle table
func NewServer(logger *log.Logger, cfg *Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clock:       quartz.NewReal(),
		stats:       NewTableStats(),
		connections: make(map[string]*Connection),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil && cfg.Table.Seed != 0 {
		s.rng = deck.NewSeededRNG(cfg.Table.Seed)
	}

	s.table = game.NewTable(logger, s,
		game.WithConfig(cfg.TableRules()),
		game.WithClock(s.clock),
		game.WithRNG(s.rng),
	)
	s.loop = game.NewLoop(s.table, logger)
	return s
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", s.handleHealth)
	r.Get("/state", s.handleState)
	r.Get("/stats", s.handleStats)
	return r
}

// Run listens on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddress())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddress(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the table loop and serves HTTP on ln until ctx is cancelled.
// A cancelled context is a clean shutdown and returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.loop.Run(gctx)
	})

	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server")
		s.closeConnections()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Broadcast sends a table event to every connection
func (s *Server) Broadcast(event game.Event) {
	if ended, ok := event.(game.GameEndedEvent); ok {
		s.stats.Record(ended)
	}

	msg, err := eventMessage(event)
	if err != nil {
		s.logger.Error("Failed to encode event", "type", event.EventType(), "error", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for id, conn := range s.connections {
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Warn("Failed to send message to client", "player", id, "error", err)
			continue
		}
		count++
	}
	s.logger.Debug("Broadcast event", "type", event.EventType(), "recipients", count)
}

// Send delivers a table event to one player
func (s *Server) Send(playerID string, event game.Event) {
	msg, err := eventMessage(event)
	if err != nil {
		s.logger.Error("Failed to encode event", "type", event.EventType(), "error", err)
		return
	}

	s.mu.RLock()
	conn, ok := s.connections[playerID]
	s.mu.RUnlock()
	if !ok {
		s.logger.Debug("Dropping event for unknown player", "player", playerID, "type", event.EventType())
		return
	}
	if err := conn.SendMessage(msg); err != nil {
		s.logger.Warn("Failed to send message to client", "player", playerID, "error", err)
	}
}

// Stats returns the results collected so far
func (s *Server) Stats() StatsSummary {
	return s.stats.Summary()
}

// ConnectionCount returns the number of open connections
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func eventMessage(event game.Event) (*protocol.Message, error) {
	return protocol.NewMessage(protocol.MessageType(event.EventType()), event)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(uuid.NewString(), ws, s)

	// The welcome is queued before registering so it precedes any broadcast
	welcome, err := protocol.NewMessage(protocol.TypeWelcome, protocol.WelcomeData{PlayerID: conn.ID()})
	if err == nil {
		_ = conn.SendMessage(welcome)
	}
	s.register(conn)
	conn.Start()

	go func() {
		<-conn.Done()
		s.unregister(conn)
	}()
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn.ID()] = conn
	total := len(s.connections)
	s.mu.Unlock()

	s.logger.Info("Client connected", "player", conn.ID(), "total", total)
}

// unregister forgets the connection and frees its seat
func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	delete(s.connections, conn.ID())
	total := len(s.connections)
	s.mu.Unlock()

	s.logger.Info("Client disconnected", "player", conn.ID(), "total", total)

	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	err := s.loop.Do(ctx, func(t *game.Table) error {
		t.Disconnect(conn.ID())
		return nil
	})
	if err != nil && !errors.Is(err, game.ErrLoopStopped) {
		s.logger.Warn("Failed to release seat", "player", conn.ID(), "error", err)
	}
}

func (s *Server) closeConnections() {
	s.mu.RLock()
	conns := make([]*Connection, 0, len(s.connections))
	for _, conn := range s.connections {
		conns = append(conns, conn)
	}
	s.mu.RUnlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// handleState returns the public table view as JSON
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var state game.StateEvent
	err := s.loop.Do(r.Context(), func(t *game.Table) error {
		state = t.Snapshot()
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		s.logger.Error("Failed to write state", "error", err)
	}
}

// handleStats returns the collected hand results as JSON
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Stats()); err != nil {
		s.logger.Error("Failed to write stats", "error", err)
	}
}
