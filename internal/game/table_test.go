package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/showdown/internal/deck"
)

func TestTableFullHand(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	table, rec, clock := newTestTable(t)

	require.NoError(t, table.Join("p1", "Alice"))
	require.NoError(t, table.Join("p2", "Bob"))
	assert.Equal(t, Idle, table.Phase())
	for _, p := range testPlayers {
		assert.Empty(t, rec.sentTo(p.ID, EventTypeGameStarted))
	}

	require.NoError(t, table.Join("p3", "Charlie"))
	assert.Equal(t, Betting, table.Phase())
	assert.Equal(t, 0, table.TurnIndex())
	assert.Len(t, table.Board(), BoardCards)

	seen := make(map[deck.Card]bool)
	for _, c := range table.Board() {
		seen[c] = true
	}
	for _, p := range testPlayers {
		started := rec.sentTo(p.ID, EventTypeGameStarted)
		require.Len(t, started, 1, "player %s", p.ID)
		ev := started[0].(GameStartedEvent)
		require.Len(t, ev.Hand, deck.HoleCards)
		assert.Equal(t, table.HandOf(p.ID), ev.Hand)
		assert.Nil(t, ev.Hands, "other players' cards must stay private")
		assert.Equal(t, 0, ev.TurnIndex)
		assert.Len(t, ev.Players, Capacity)
		for _, c := range ev.Hand {
			assert.False(t, seen[c], "card %v dealt twice", c)
			seen[c] = true
		}
	}

	require.NoError(t, table.PlaceBet("p2", 50))
	assert.Equal(t, 50, table.Pot())
	assert.True(t, table.ShowdownPending())

	updates := rec.broadcastsOf(EventTypePotUpdated)
	require.Len(t, updates, 1)
	assert.Equal(t, PotUpdatedEvent{HandID: updates[0].(PotUpdatedEvent).HandID, PlayerID: "p2", PlayerTotal: 50, Pot: 50}, updates[0])

	require.NoError(t, table.PlaceBet("p1", 30))
	assert.Equal(t, 80, table.Pot())

	clock.Advance(DefaultShowdownDelay).MustWait(ctx)

	ended := rec.broadcastsOf(EventTypeGameEnded)
	require.Len(t, ended, 1)
	result := ended[0].(GameEndedEvent)
	assert.False(t, result.Aborted)
	assert.Equal(t, 80, result.Pot)
	assert.Len(t, result.Hands, Capacity)
	assert.True(t, result.Draw || result.Winner != "")

	assert.Equal(t, Idle, table.Phase())
	assert.Zero(t, table.Pot())
	assert.Zero(t, table.TurnIndex())
	assert.Empty(t, table.Players())
	assert.Nil(t, table.HandOf("p1"))
	assert.False(t, table.ShowdownPending())
	assert.Len(t, rec.broadcastsOf(EventTypeTableReset), 1)
}

func TestTableShowdownFiresOnce(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	table, rec, clock := newTestTable(t)
	seatAll(t, table)

	require.NoError(t, table.PlaceBet("p1", 10))
	clock.Advance(5 * time.Second).MustWait(ctx)
	require.NoError(t, table.PlaceBet("p2", 10))
	clock.Advance(5 * time.Second).MustWait(ctx)

	assert.Len(t, rec.broadcastsOf(EventTypeGameEnded), 1, "second bet must not re-arm the timer")

	clock.Advance(DefaultShowdownDelay).MustWait(ctx)
	assert.Len(t, rec.broadcastsOf(EventTypeGameEnded), 1)
}

func TestTableJoinRules(t *testing.T) {
	t.Parallel()

	table, _, _ := newTestTable(t)

	assert.ErrorIs(t, table.Join("p1", "   "), ErrInvalidName)
	require.NoError(t, table.Join("p1", "Alice"))
	assert.ErrorIs(t, table.Join("p1", "Alice again"), ErrAlreadySeated)
	require.NoError(t, table.Join("p2", "Bob"))
	require.NoError(t, table.Join("p3", "Charlie"))

	assert.ErrorIs(t, table.Join("p4", "Dave"), ErrGameInProgress)
	assert.Len(t, table.Players(), Capacity)
}

func TestTableRejectsInvalidBet(t *testing.T) {
	t.Parallel()

	table, rec, _ := newTestTable(t)
	seatAll(t, table)

	err := table.PlaceBet("p1", -5)
	var betErr *InvalidBetError
	require.ErrorAs(t, err, &betErr)

	assert.Zero(t, table.Pot())
	assert.Empty(t, table.Ledger().Entries())
	assert.False(t, table.ShowdownPending())
	assert.Empty(t, rec.broadcastsOf(EventTypePotUpdated))
}

func TestTableActionsOutsideBetting(t *testing.T) {
	t.Parallel()

	table, _, _ := newTestTable(t)
	require.NoError(t, table.Join("p1", "Alice"))

	assert.ErrorIs(t, table.PlaceBet("p1", 10), ErrNotBetting)
	assert.ErrorIs(t, table.AdvanceTurn("p1"), ErrNotBetting)

	require.NoError(t, table.Join("p2", "Bob"))
	require.NoError(t, table.Join("p3", "Charlie"))
	assert.ErrorIs(t, table.PlaceBet("spectator", 10), ErrNotSeated)
	assert.ErrorIs(t, table.AdvanceTurn("spectator"), ErrNotSeated)
}

func TestTableAdvanceTurnWraps(t *testing.T) {
	t.Parallel()

	table, rec, _ := newTestTable(t)
	seatAll(t, table)

	want := []int{1, 2, 0, 1}
	for i, idx := range want {
		require.NoError(t, table.AdvanceTurn("p1"))
		assert.Equal(t, idx, table.TurnIndex(), "step %d", i)
	}

	changes := rec.broadcastsOf(EventTypeTurnChanged)
	require.Len(t, changes, len(want))
	assert.Equal(t, "p3", changes[1].(TurnChangedEvent).PlayerID)
}

func TestTableDisconnectCancelsShowdown(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	table, rec, clock := newTestTable(t)
	seatAll(t, table)
	require.NoError(t, table.PlaceBet("p1", 25))
	require.True(t, table.ShowdownPending())

	table.Disconnect("p2")

	ended := rec.broadcastsOf(EventTypeGameEnded)
	require.Len(t, ended, 1)
	abort := ended[0].(GameEndedEvent)
	assert.True(t, abort.Aborted)
	assert.Empty(t, abort.Winner)
	assert.Zero(t, abort.Pot)
	assert.Contains(t, abort.Reason, "Bob")

	assert.Equal(t, Idle, table.Phase())
	assert.Zero(t, table.Pot())
	assert.False(t, table.ShowdownPending())
	assert.Equal(t, []Player{testPlayers[0], testPlayers[2]}, table.Players())

	clock.Advance(DefaultShowdownDelay).MustWait(ctx)
	assert.Len(t, rec.broadcastsOf(EventTypeGameEnded), 1, "cancelled timer must not resolve the hand")

	// remaining players stay seated and one more join deals again
	require.NoError(t, table.Join("p4", "Dave"))
	assert.Equal(t, Betting, table.Phase())
}

func TestTableIgnoresStaleShowdown(t *testing.T) {
	t.Parallel()

	table, rec, _ := newTestTable(t)
	seatAll(t, table)
	staleRound := table.round

	table.Disconnect("p3")
	require.NoError(t, table.Join("p3", "Charlie"))
	require.Equal(t, Betting, table.Phase())

	table.fireShowdown(staleRound)
	assert.Equal(t, Betting, table.Phase())
	assert.Len(t, rec.broadcastsOf(EventTypeGameEnded), 1, "only the abort should be recorded")
}

func TestTableDisconnectWhileIdle(t *testing.T) {
	t.Parallel()

	table, rec, _ := newTestTable(t)
	require.NoError(t, table.Join("p1", "Alice"))

	table.Disconnect("unknown")
	table.Disconnect("p1")

	assert.Empty(t, table.Players())
	assert.Empty(t, rec.broadcastsOf(EventTypeGameEnded))
	assert.Empty(t, rec.broadcastsOf(EventTypeTableReset))
}

func TestTableRequestState(t *testing.T) {
	t.Parallel()

	table, rec, _ := newTestTable(t)
	seatAll(t, table)
	require.NoError(t, table.PlaceBet("p3", 15))

	table.RequestState("p2")

	states := rec.sentTo("p2", EventTypeState)
	require.Len(t, states, 1)
	state := states[0].(StateEvent)
	assert.Equal(t, Betting, state.Phase)
	assert.Equal(t, table.HandOf("p2"), state.Hand)
	assert.Equal(t, 15, state.Pot)
	assert.Len(t, state.Players, Capacity)
	assert.Empty(t, rec.sentTo("p1", EventTypeState))
	assert.Empty(t, rec.broadcastsOf(EventTypeState))
}

func TestTableRevealHands(t *testing.T) {
	t.Parallel()

	table, rec, _ := newTestTable(t, WithConfig(Config{RevealHands: true}))
	seatAll(t, table)

	ev := rec.sentTo("p1", EventTypeGameStarted)[0].(GameStartedEvent)
	require.Len(t, ev.Hands, Capacity)
	assert.Equal(t, table.HandOf("p3"), ev.Hands["p3"])
}

func TestTableConsecutiveHands(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	table, rec, clock := newTestTable(t, WithConfig(Config{ShowdownDelay: time.Second}))

	for hand := 1; hand <= 3; hand++ {
		seatAll(t, table)
		require.NoError(t, table.PlaceBet("p1", hand*10))
		clock.Advance(time.Second).MustWait(ctx)
		require.Equal(t, Idle, table.Phase())
		require.Len(t, rec.broadcastsOf(EventTypeGameEnded), hand)
	}
}
