package evaluator

import (
	"fmt"

	poker "github.com/paulhankin/poker"

	"github.com/lox/showdown/internal/deck"
)

// Describe returns a human readable name for a five-card hand, such as
// "pair of jacks". The text comes from paulhankin/poker, which plays the
// wheel as a straight, so descriptions of A-2-3-4-5 can read higher than
// the Result Evaluate assigns.
func Describe(cards []deck.Card) (string, error) {
	if len(cards) != HandSize {
		return "", &InvalidHandSizeError{Got: len(cards)}
	}

	converted := make([]poker.Card, len(cards))
	for i, c := range cards {
		pc, err := toLibraryCard(c)
		if err != nil {
			return "", err
		}
		converted[i] = pc
	}

	return poker.Describe(converted)
}

// toLibraryCard converts ranks 2..14 to the library's 1..13 with the ace as 1.
func toLibraryCard(c deck.Card) (poker.Card, error) {
	var (
		s    poker.Suit
		zero poker.Card
	)
	switch c.Suit {
	case deck.Clubs:
		s = poker.Club
	case deck.Diamonds:
		s = poker.Diamond
	case deck.Hearts:
		s = poker.Heart
	case deck.Spades:
		s = poker.Spade
	default:
		return zero, fmt.Errorf("invalid suit %d", c.Suit)
	}

	r := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		r = poker.Rank(1)
	}

	return poker.MakeCard(s, r)
}
