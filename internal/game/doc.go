// Package game implements the rules of a three-seat card table.
//
// The main type is Table, a state machine that moves through
// Idle → Dealing → Betting → Showdown → Idle. It owns the deck, the betting
// Ledger, the turn order and the dealt hands, and emits events through a
// Broadcaster.
//
// # Basic Usage
//
//	table := game.NewTable(logger, broadcaster)
//	loop := game.NewLoop(table, logger)
//	go loop.Run(ctx)
//
//	err := loop.Do(ctx, func(t *game.Table) error {
//	    return t.Join(connID, "Alice")
//	})
//
// When the third player joins, every player is dealt two hole cards and a
// three-card board is dealt face up. A player's showdown hand is their hole
// cards plus the board, evaluated as exactly five cards.
//
// # Timing
//
// The first accepted bet of a round arms a showdown timer on the table's
// quartz.Clock. When it fires, the showdown is queued on the Loop like any
// other action. Resetting the table (showdown or a disconnect mid-hand)
// stops the timer, and a timer from an earlier round is ignored if it
// fires anyway.
//
// # Deterministic Testing
//
//	clock := quartz.NewMock(t)
//	table := game.NewTable(logger, rec, game.WithClock(clock), game.WithRNG(deck.NewSeededRNG(42)))
//	// ... join three players, bet ...
//	clock.Advance(game.DefaultShowdownDelay).MustWait(ctx)
package game
