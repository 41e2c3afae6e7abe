package game

import (
	"fmt"
	"slices"

	"github.com/lox/showdown/internal/deck"
	"github.com/lox/showdown/internal/evaluator"
)

// Contender is a seated player's cards at showdown
type Contender struct {
	PlayerID string
	Name     string
	Hole     []deck.Card
	Board    []deck.Card
}

// ShowdownHand is a contender's evaluated five-card hand
type ShowdownHand struct {
	PlayerID    string           `json:"playerId"`
	Name        string           `json:"name"`
	Cards       []deck.Card      `json:"cards"`
	Result      evaluator.Result `json:"result"`
	Description string           `json:"description,omitempty"`
}

// Outcome is the result of a showdown. Exactly one of Winner or Draw is set.
type Outcome struct {
	Winner     string
	WinnerName string
	Draw       bool
	Tied       []string
	Pot        int
	Hands      []ShowdownHand
}

// Resolve evaluates every contender's hole cards plus the board and picks
// the single best hand. When several contenders share the best category and
// tiebreak the outcome is a draw listing all of them.
func Resolve(contenders []Contender, pot int) (Outcome, error) {
	if len(contenders) == 0 {
		return Outcome{}, ErrNoPlayers
	}

	out := Outcome{Pot: pot, Hands: make([]ShowdownHand, 0, len(contenders))}

	var best evaluator.Result
	var leaders []int
	for i, c := range contenders {
		cards := append(slices.Clone(c.Hole), c.Board...)
		result, err := evaluator.Evaluate(cards)
		if err != nil {
			return Outcome{}, fmt.Errorf("evaluate hand of %s: %w", c.PlayerID, err)
		}

		// Evaluate has already validated the cards
		desc, _ := evaluator.Describe(cards)
		out.Hands = append(out.Hands, ShowdownHand{
			PlayerID:    c.PlayerID,
			Name:        c.Name,
			Cards:       cards,
			Result:      result,
			Description: desc,
		})

		cmp := evaluator.Compare(result, best)
		switch {
		case i == 0 || cmp > 0:
			best = result
			leaders = append(leaders[:0], i)
		case cmp == 0:
			leaders = append(leaders, i)
		}
	}

	if len(leaders) == 1 {
		out.Winner = contenders[leaders[0]].PlayerID
		out.WinnerName = contenders[leaders[0]].Name
		return out, nil
	}

	out.Draw = true
	for _, i := range leaders {
		out.Tied = append(out.Tied, contenders[i].PlayerID)
	}
	return out, nil
}
