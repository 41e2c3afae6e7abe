package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/showdown/internal/deck"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		category Category
		tiebreak int
	}{
		{"royal flush", "AsKsQsJsTs", StraightFlush, 14},
		{"low straight flush", "6h5h4h3h2h", StraightFlush, 6},
		{"four of a kind", "9c9d9h9s2c", FourOfAKind, 9},
		{"full house uses trips rank", "3s3h3dKcKs", FullHouse, 3},
		{"flush", "Ad9d7d4d2d", Flush, 14},
		{"straight", "9c8d7h6s5c", Straight, 9},
		{"three of a kind", "2h2d2c5s9s", ThreeOfAKind, 2},
		{"two pair", "3s3h9d9c2s", TwoPair, 9},
		{"pair", "JhJd4c7s2c", Pair, 11},
		{"high card", "Kh9d7c4s2h", HighCard, 13},
		{"wheel is not a straight", "As2d3c4h5s", HighCard, 14},
		{"wheel flush is only a flush", "As2s3s4s5s", Flush, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Evaluate(deck.MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.tiebreak, got.Tiebreak)
		})
	}
}

func TestEvaluateRejectsWrongSize(t *testing.T) {
	t.Parallel()

	for _, cards := range []string{"", "AsKs", "AsKsQsJs", "AsKsQsJsTs9s"} {
		_, err := Evaluate(deck.MustParseCards(cards))
		var sizeErr *InvalidHandSizeError
		require.ErrorAs(t, err, &sizeErr, "cards %q", cards)
		assert.Equal(t, len(cards)/2, sizeErr.Got)
	}
}

func TestEvaluateRejectsInvalidCard(t *testing.T) {
	t.Parallel()

	cards := deck.MustParseCards("AsKsQsJs")
	cards = append(cards, deck.Card{})
	_, err := Evaluate(cards)
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	desc, err := Describe(deck.MustParseCards("JhJd4c7s2c"))
	require.NoError(t, err)
	assert.NotEmpty(t, desc)

	_, err = Describe(deck.MustParseCards("JhJd"))
	var sizeErr *InvalidHandSizeError
	assert.ErrorAs(t, err, &sizeErr)
}
