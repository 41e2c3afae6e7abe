package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/showdown/internal/deck"
	"github.com/lox/showdown/internal/game"
	"github.com/lox/showdown/internal/protocol"
)

var (
	redCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	blackCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	winStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func renderCard(c deck.Card) string {
	if c.IsRed() {
		return redCardStyle.Render(c.String())
	}
	return blackCardStyle.Render(c.String())
}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}

// renderMessage formats a server message for the terminal. selfID marks
// this player's own seat.
func renderMessage(msg *protocol.Message, selfID string) (string, error) {
	switch string(msg.Type) {
	case string(game.EventTypeMessage):
		var e game.MessageEvent
		if err := msg.Decode(&e); err != nil {
			return "", err
		}
		return infoStyle.Render(e.Text), nil

	case string(game.EventTypeGameStarted):
		var e game.GameStartedEvent
		if err := msg.Decode(&e); err != nil {
			return "", err
		}
		var b strings.Builder
		b.WriteString(headerStyle.Render("Hand dealt"))
		fmt.Fprintf(&b, "\n  Your cards: %s", renderCards(e.Hand))
		fmt.Fprintf(&b, "\n  Board:      %s", renderCards(e.Board))
		for i, p := range e.Players {
			marker := " "
			if i == e.TurnIndex {
				marker = ">"
			}
			line := fmt.Sprintf("\n  %s %d. %s", marker, i+1, p.Name)
			if cards, ok := e.Hands[p.ID]; ok && p.ID != selfID {
				line += "  " + renderCards(cards)
			}
			b.WriteString(line)
		}
		return b.String(), nil

	case string(game.EventTypeTurnChanged):
		var e game.TurnChangedEvent
		if err := msg.Decode(&e); err != nil {
			return "", err
		}
		if e.PlayerID == selfID {
			return headerStyle.Render("Your turn"), nil
		}
		return infoStyle.Render(fmt.Sprintf("Turn passes to seat %d", e.TurnIndex+1)), nil

	case string(game.EventTypePotUpdated):
		var e game.PotUpdatedEvent
		if err := msg.Decode(&e); err != nil {
			return "", err
		}
		who := "A player"
		if e.PlayerID == selfID {
			who = "You"
		}
		return fmt.Sprintf("%s now %d in. Pot: %d", who, e.PlayerTotal, e.Pot), nil

	case string(game.EventTypeGameEnded):
		var e game.GameEndedEvent
		if err := msg.Decode(&e); err != nil {
			return "", err
		}
		return renderGameEnded(e), nil

	case string(game.EventTypeTableReset):
		return infoStyle.Render("Table reset. Join to play again."), nil

	case string(game.EventTypeState):
		var e game.StateEvent
		if err := msg.Decode(&e); err != nil {
			return "", err
		}
		return renderState(e), nil

	case string(protocol.TypeError):
		var e protocol.ErrorData
		if err := msg.Decode(&e); err != nil {
			return "", err
		}
		return errorStyle.Render(fmt.Sprintf("Error (%s): %s", e.Code, e.Message)), nil

	default:
		raw, _ := json.Marshal(msg)
		return string(raw), nil
	}
}

func renderGameEnded(e game.GameEndedEvent) string {
	var b strings.Builder
	switch {
	case e.Aborted:
		b.WriteString(errorStyle.Render(e.Reason))
		return b.String()
	case e.Draw:
		b.WriteString(winStyle.Render(fmt.Sprintf("Draw between %s. Pot of %d is not awarded.", strings.Join(tiedNames(e), ", "), e.Pot)))
	default:
		b.WriteString(winStyle.Render(fmt.Sprintf("%s wins the pot of %d", e.WinnerName, e.Pot)))
	}
	for _, h := range e.Hands {
		fmt.Fprintf(&b, "\n  %-10s %s  %s", h.Name, renderCards(h.Cards), h.Description)
	}
	return b.String()
}

func tiedNames(e game.GameEndedEvent) []string {
	names := make([]string, 0, len(e.Tied))
	for _, id := range e.Tied {
		name := id
		for _, h := range e.Hands {
			if h.PlayerID == id {
				name = h.Name
				break
			}
		}
		names = append(names, name)
	}
	return names
}

func renderState(e game.StateEvent) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Table is %s", e.Phase)))
	if len(e.Hand) > 0 {
		fmt.Fprintf(&b, "\n  Your cards: %s", renderCards(e.Hand))
	}
	if len(e.Board) > 0 {
		fmt.Fprintf(&b, "\n  Board:      %s", renderCards(e.Board))
	}
	bets := make(map[string]int, len(e.Bets))
	for _, entry := range e.Bets {
		bets[entry.PlayerID] = entry.Amount
	}
	for i, p := range e.Players {
		marker := " "
		if e.Phase == game.Betting && i == e.TurnIndex {
			marker = ">"
		}
		fmt.Fprintf(&b, "\n  %s %d. %-10s bet %d", marker, i+1, p.Name, bets[p.ID])
	}
	fmt.Fprintf(&b, "\n  Pot: %d", e.Pot)
	return b.String()
}
