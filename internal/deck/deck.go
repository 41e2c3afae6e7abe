package deck

import (
	"fmt"
	rand "math/rand/v2"
)

const (
	// Size is the number of cards in a full deck
	Size = 52

	// HoleCards is the number of private cards dealt to each player
	HoleCards = 2
)

// InsufficientCardsError is returned when a deal asks for more cards than
// the deck holds. Nothing is dealt when it is returned.
type InsufficientCardsError struct {
	Need int
	Have int
}

func (e *InsufficientCardsError) Error() string {
	return fmt.Sprintf("insufficient cards: need %d, have %d", e.Need, e.Have)
}

// BuildDeck returns one card per rank and suit, suits outer and ranks inner.
func BuildDeck() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Deck represents a deck of playing cards
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a full 52-card deck in build order. A nil rng falls back
// to an unseeded source.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Deck{cards: BuildDeck(), rng: rng}
}

// NewSeededRNG returns a deterministic source for reproducible deals.
func NewSeededRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Reset restores the deck to a full 52-card deck and shuffles it
func (d *Deck) Reset() {
	d.cards = append(d.cards[:0], BuildDeck()...)
	d.Shuffle()
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// DealN removes the top n cards, or nothing when fewer than n remain.
func (d *Deck) DealN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, &InsufficientCardsError{Need: n, Have: len(d.cards)}
	}

	cards := make([]Card, n)
	for i := range cards {
		cards[i], _ = d.Deal()
	}
	return cards, nil
}

// DealBoard deals the shared community cards.
func (d *Deck) DealBoard(n int) ([]Card, error) {
	return d.DealN(n)
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Cards returns a copy of the cards left in the deck, top card last
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// DealHands deals HoleCards cards to every player, one card at a time in
// seat order. The precondition is checked up front so a failed deal leaves
// the deck untouched.
func DealHands(d *Deck, playerIDs []string) (map[string][]Card, error) {
	need := HoleCards * len(playerIDs)
	if need > d.CardsRemaining() {
		return nil, &InsufficientCardsError{Need: need, Have: d.CardsRemaining()}
	}

	hands := make(map[string][]Card, len(playerIDs))
	for round := 0; round < HoleCards; round++ {
		for _, id := range playerIDs {
			card, _ := d.Deal()
			hands[id] = append(hands[id], card)
		}
	}
	return hands, nil
}
