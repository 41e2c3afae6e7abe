package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageEnvelope(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(TypePlaceBet, PlaceBetData{Amount: 50})
	require.NoError(t, err)
	assert.False(t, msg.Timestamp.IsZero())

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, TypePlaceBet, decoded.Type)

	var bet PlaceBetData
	require.NoError(t, decoded.Decode(&bet))
	assert.Equal(t, 50, bet.Amount)
}

func TestMessageWithoutData(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(TypeAdvanceTurn, nil)
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"data"`)

	var join JoinData
	assert.ErrorIs(t, msg.Decode(&join), ErrEmptyData)
}

func TestClientFrameFromRawJSON(t *testing.T) {
	t.Parallel()

	var msg Message
	require.NoError(t, json.Unmarshal([]byte(`{"type":"join","data":{"playerName":"Alice"}}`), &msg))

	var join JoinData
	require.NoError(t, msg.Decode(&join))
	assert.Equal(t, "Alice", join.PlayerName)
}
