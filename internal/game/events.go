package game

import "github.com/lox/showdown/internal/deck"

// EventType represents a table event type with type safety
type EventType string

// EventType constants double as the wire message types
const (
	EventTypeGameStarted EventType = "game_started"
	EventTypeTurnChanged EventType = "turn_changed"
	EventTypePotUpdated  EventType = "pot_updated"
	EventTypeGameEnded   EventType = "game_ended"
	EventTypeTableReset  EventType = "table_reset"
	EventTypeMessage     EventType = "message"
	EventTypeState       EventType = "state"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything the table emits for delivery to players
type Event interface {
	EventType() EventType
}

// Broadcaster delivers table events. Broadcast goes to every connection at
// the table; Send goes to one player. Implementations must not block.
type Broadcaster interface {
	Broadcast(event Event)
	Send(playerID string, event Event)
}

// NopBroadcaster discards all events
type NopBroadcaster struct{}

func (NopBroadcaster) Broadcast(Event) {}
func (NopBroadcaster) Send(string, Event) {}

// GameStartedEvent is sent to each player when a hand is dealt. Hand holds
// only the recipient's own hole cards; Hands is filled only when the table
// is configured to reveal every hand.
type GameStartedEvent struct {
	HandID    string                 `json:"handId"`
	Hand      []deck.Card            `json:"hand"`
	Hands     map[string][]deck.Card `json:"hands,omitempty"`
	Board     []deck.Card            `json:"board"`
	TurnIndex int                    `json:"turnIndex"`
	Players   []Player               `json:"players"`
}

func (GameStartedEvent) EventType() EventType { return EventTypeGameStarted }

// TurnChangedEvent is broadcast when the turn rotates
type TurnChangedEvent struct {
	HandID    string `json:"handId"`
	TurnIndex int    `json:"turnIndex"`
	PlayerID  string `json:"playerId"`
}

func (TurnChangedEvent) EventType() EventType { return EventTypeTurnChanged }

// PotUpdatedEvent is broadcast after every accepted bet
type PotUpdatedEvent struct {
	HandID      string `json:"handId"`
	PlayerID    string `json:"playerId"`
	PlayerTotal int    `json:"playerTotal"`
	Pot         int    `json:"pot"`
}

func (PotUpdatedEvent) EventType() EventType { return EventTypePotUpdated }

// GameEndedEvent is broadcast when a hand finishes, either at showdown or
// aborted because a player left.
type GameEndedEvent struct {
	HandID     string         `json:"handId"`
	Winner     string         `json:"winner,omitempty"`
	WinnerName string         `json:"winnerName,omitempty"`
	Draw       bool           `json:"draw,omitempty"`
	Tied       []string       `json:"tied,omitempty"`
	Aborted    bool           `json:"aborted,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Pot        int            `json:"pot"`
	Hands      []ShowdownHand `json:"hands,omitempty"`
}

func (GameEndedEvent) EventType() EventType { return EventTypeGameEnded }

// TableResetEvent is broadcast once the table is back to Idle
type TableResetEvent struct{}

func (TableResetEvent) EventType() EventType { return EventTypeTableReset }

// MessageEvent carries informational text
type MessageEvent struct {
	Text string `json:"text"`
}

func (MessageEvent) EventType() EventType { return EventTypeMessage }

// StateEvent answers a state request. Hand is the requester's own cards.
type StateEvent struct {
	Phase     Phase         `json:"phase"`
	HandID    string        `json:"handId,omitempty"`
	Hand      []deck.Card   `json:"hand,omitempty"`
	Board     []deck.Card   `json:"board,omitempty"`
	TurnIndex int           `json:"turnIndex"`
	Pot       int           `json:"pot"`
	Players   []Player      `json:"players"`
	Bets      []LedgerEntry `json:"bets,omitempty"`
}

func (StateEvent) EventType() EventType { return EventTypeState }
