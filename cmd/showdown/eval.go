package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/showdown/internal/deck"
	"github.com/lox/showdown/internal/evaluator"
)

// EvalCmd evaluates one or more five-card hands and names the best
type EvalCmd struct {
	Hands []string `arg:"" help:"Five-card hands such as 'AsKsQsJsTs' (quote hands containing spaces)"`
}

func (c *EvalCmd) Run(globals *Globals) error {
	type scored struct {
		cards  []deck.Card
		result evaluator.Result
		desc   string
	}

	hands := make([]scored, 0, len(c.Hands))
	for _, raw := range c.Hands {
		cards, err := deck.ParseCards(raw)
		if err != nil {
			return fmt.Errorf("hand %q: %w", raw, err)
		}
		result, err := evaluator.Evaluate(cards)
		if err != nil {
			return fmt.Errorf("hand %q: %w", raw, err)
		}
		desc, err := evaluator.Describe(cards)
		if err != nil {
			return fmt.Errorf("hand %q: %w", raw, err)
		}
		hands = append(hands, scored{cards: cards, result: result, desc: desc})
	}

	best := evaluator.Result{Category: -1}
	for _, h := range hands {
		if h.result.Beats(best) {
			best = h.result
		}
	}
	leaders := 0
	for _, h := range hands {
		if evaluator.Compare(h.result, best) == 0 {
			leaders++
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, headerStyle.Render("HAND")+"\t"+headerStyle.Render("CATEGORY")+"\t"+headerStyle.Render("TIEBREAK")+"\t"+headerStyle.Render("DESCRIPTION"))
	for _, h := range hands {
		line := fmt.Sprintf("%s\t%s\t%d\t%s", renderCards(h.cards), h.result.Category, h.result.Tiebreak, h.desc)
		if len(hands) > 1 && evaluator.Compare(h.result, best) == 0 {
			if leaders > 1 {
				line += "\t" + winStyle.Render("draw")
			} else {
				line += "\t" + winStyle.Render("best")
			}
		}
		_, _ = fmt.Fprintln(w, line)
	}
	return w.Flush()
}
