package evaluator

import (
	"fmt"
	"slices"

	"github.com/lox/showdown/internal/deck"
)

// HandSize is the number of cards Evaluate accepts
const HandSize = 5

// InvalidHandSizeError is returned when a hand does not hold exactly five cards
type InvalidHandSizeError struct {
	Got int
}

func (e *InvalidHandSizeError) Error() string {
	return fmt.Sprintf("invalid hand size: got %d cards, want %d", e.Got, HandSize)
}

// Evaluate classifies a five-card hand. The wheel (A-2-3-4-5) is not
// treated as a straight: aces only play high.
func Evaluate(cards []deck.Card) (Result, error) {
	if len(cards) != HandSize {
		return Result{}, &InvalidHandSizeError{Got: len(cards)}
	}

	var counts [15]int
	values := make([]int, 0, HandSize)
	flush := true
	for i, c := range cards {
		if !c.Valid() {
			return Result{}, fmt.Errorf("invalid card at position %d: %v", i, c)
		}
		counts[c.Rank]++
		values = append(values, int(c.Rank))
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}
	slices.Sort(values)
	top := values[HandSize-1]

	quads := highestWithCount(counts, 4)
	trips := highestWithCount(counts, 3)
	pairs := ranksWithCount(counts, 2)
	straight := isStraight(values)

	switch {
	case straight && flush:
		return Result{Category: StraightFlush, Tiebreak: top}, nil
	case quads > 0:
		return Result{Category: FourOfAKind, Tiebreak: quads}, nil
	case trips > 0 && len(pairs) == 1:
		return Result{Category: FullHouse, Tiebreak: trips}, nil
	case flush:
		return Result{Category: Flush, Tiebreak: top}, nil
	case straight:
		return Result{Category: Straight, Tiebreak: top}, nil
	case trips > 0:
		return Result{Category: ThreeOfAKind, Tiebreak: trips}, nil
	case len(pairs) == 2:
		return Result{Category: TwoPair, Tiebreak: pairs[0]}, nil
	case len(pairs) == 1:
		return Result{Category: Pair, Tiebreak: pairs[0]}, nil
	default:
		return Result{Category: HighCard, Tiebreak: top}, nil
	}
}

// isStraight expects sorted values
func isStraight(values []int) bool {
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			return false
		}
	}
	return true
}

func highestWithCount(counts [15]int, n int) int {
	for r := int(deck.Ace); r >= int(deck.Two); r-- {
		if counts[r] == n {
			return r
		}
	}
	return 0
}

// ranksWithCount returns matching ranks, highest first
func ranksWithCount(counts [15]int, n int) []int {
	var out []int
	for r := int(deck.Ace); r >= int(deck.Two); r-- {
		if counts[r] == n {
			out = append(out, r)
		}
	}
	return out
}
