package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTurnCycles(t *testing.T) {
	t.Parallel()

	for players := 1; players <= 6; players++ {
		idx := 0
		for step := 1; step <= players*3; step++ {
			next, err := NextTurn(idx, players)
			require.NoError(t, err)
			require.GreaterOrEqual(t, next, 0)
			require.Less(t, next, players)
			idx = next
			if step%players == 0 {
				assert.Equal(t, 0, idx, "%d players should cycle back after %d steps", players, step)
			}
		}
	}
}

func TestNextTurnNoPlayers(t *testing.T) {
	t.Parallel()

	_, err := NextTurn(0, 0)
	assert.ErrorIs(t, err, ErrNoPlayers)
}
