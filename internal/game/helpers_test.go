package game

import (
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/showdown/internal/deck"
)

// recorder captures events; the showdown timer can deliver from another goroutine
type recorder struct {
	mu         sync.Mutex
	broadcasts []Event
	sent       map[string][]Event
}

func newRecorder() *recorder {
	return &recorder{sent: make(map[string][]Event)}
}

func (r *recorder) Broadcast(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcasts = append(r.broadcasts, e)
}

func (r *recorder) Send(playerID string, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent[playerID] = append(r.sent[playerID], e)
}

func (r *recorder) broadcastsOf(typ EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.broadcasts {
		if e.EventType() == typ {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) sentTo(playerID string, typ EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.sent[playerID] {
		if e.EventType() == typ {
			out = append(out, e)
		}
	}
	return out
}

func newTestLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestTable(t *testing.T, opts ...Option) (*Table, *recorder, *quartz.Mock) {
	t.Helper()

	clock := quartz.NewMock(t)
	rec := newRecorder()
	opts = append([]Option{WithClock(clock), WithRNG(deck.NewSeededRNG(42))}, opts...)
	return NewTable(newTestLogger(), rec, opts...), rec, clock
}

var testPlayers = []Player{
	{ID: "p1", Name: "Alice"},
	{ID: "p2", Name: "Bob"},
	{ID: "p3", Name: "Charlie"},
}

func seatAll(t *testing.T, table *Table) {
	t.Helper()
	for _, p := range testPlayers {
		require.NoError(t, table.Join(p.ID, p.Name))
	}
}
