package evaluator

import "fmt"

// Category is the class of a five-card hand. Higher values beat lower ones.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the wire name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "high_card"
	case Pair:
		return "pair"
	case TwoPair:
		return "two_pair"
	case ThreeOfAKind:
		return "three_of_a_kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// MarshalText encodes the category by name
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name
func (c *Category) UnmarshalText(text []byte) error {
	for candidate := HighCard; candidate <= StraightFlush; candidate++ {
		if candidate.String() == string(text) {
			*c = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown hand category %q", text)
}

// Result is the evaluated strength of a hand. Tiebreak is the rank value
// (2..14) of the grouping that decided the category.
type Result struct {
	Category Category `json:"category"`
	Tiebreak int      `json:"tiebreak"`
}

func (r Result) String() string {
	return fmt.Sprintf("%s (%d)", r.Category, r.Tiebreak)
}

// Compare orders two results by category, then tiebreak. It returns a
// positive number when a beats b, negative when b beats a, zero on a tie.
func Compare(a, b Result) int {
	if a.Category != b.Category {
		return int(a.Category) - int(b.Category)
	}
	return a.Tiebreak - b.Tiebreak
}

// Beats reports whether r strictly outranks other
func (r Result) Beats(other Result) bool {
	return Compare(r, other) > 0
}
