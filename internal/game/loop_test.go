package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopSerializesActions(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	table, rec, clock := newTestTable(t)
	loop := NewLoop(table, newTestLogger())

	loopCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- loop.Run(loopCtx) }()

	for _, p := range testPlayers {
		require.NoError(t, loop.Do(ctx, func(t *Table) error { return t.Join(p.ID, p.Name) }))
	}
	require.NoError(t, loop.Do(ctx, func(t *Table) error { return t.PlaceBet("p1", 50) }))

	err := loop.Do(ctx, func(t *Table) error { return t.PlaceBet("p1", -5) })
	var betErr *InvalidBetError
	assert.ErrorAs(t, err, &betErr)

	// the timer callback queues the showdown on the loop
	clock.Advance(DefaultShowdownDelay).MustWait(ctx)
	require.Eventually(t, func() bool {
		return len(rec.broadcastsOf(EventTypeGameEnded)) == 1
	}, time.Second, 5*time.Millisecond)

	var phase Phase
	require.NoError(t, loop.Do(ctx, func(t *Table) error {
		phase = t.Phase()
		return nil
	}))
	assert.Equal(t, Idle, phase)

	stop()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.ErrorIs(t, loop.Do(ctx, func(*Table) error { return nil }), ErrLoopStopped)
}
