package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/showdown/internal/evaluator"
	"github.com/lox/showdown/internal/game"
)

func TestTableStatsSummary(t *testing.T) {
	t.Parallel()

	stats := NewTableStats()
	pair := game.ShowdownHand{Result: evaluator.Result{Category: evaluator.Pair, Tiebreak: 9}}
	flush := game.ShowdownHand{Result: evaluator.Result{Category: evaluator.Flush, Tiebreak: 13}}

	stats.Record(game.GameEndedEvent{WinnerName: "Bob", Pot: 60, Hands: []game.ShowdownHand{pair, flush}})
	stats.Record(game.GameEndedEvent{WinnerName: "Alice", Pot: 20, Hands: []game.ShowdownHand{flush}})
	stats.Record(game.GameEndedEvent{WinnerName: "Bob", Pot: 100})
	stats.Record(game.GameEndedEvent{Draw: true, Tied: []string{"a", "b"}, Pot: 40})
	stats.Record(game.GameEndedEvent{Aborted: true, Reason: "Carol left the table. Game over."})

	summary := stats.Summary()
	assert.Equal(t, 4, summary.HandsCompleted)
	assert.Equal(t, 1, summary.HandsAborted)
	assert.Equal(t, 1, summary.Draws)
	assert.Equal(t, 220, summary.TotalPot)
	assert.Equal(t, 100, summary.BiggestPot)
	assert.InDelta(t, 55.0, summary.AveragePot, 0.001)
	assert.Equal(t, []PlayerWins{{Name: "Bob", Wins: 2}, {Name: "Alice", Wins: 1}}, summary.Leaders)
	assert.Equal(t, map[string]int{"pair": 1, "flush": 2}, summary.Categories)
}

func TestTableStatsEmpty(t *testing.T) {
	t.Parallel()

	summary := NewTableStats().Summary()
	assert.Zero(t, summary.HandsCompleted)
	assert.Zero(t, summary.AveragePot)
	assert.Empty(t, summary.Leaders)
}
