package protocol

import (
	"encoding/json"
	"errors"
	"time"
)

// MessageType identifies the type of message
type MessageType string

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

const (
	// Client -> Server
	TypeJoin         MessageType = "join"
	TypePlaceBet     MessageType = "place_bet"
	TypeAdvanceTurn  MessageType = "advance_turn"
	TypeRequestState MessageType = "request_state"

	// Server -> Client. Table events use the game package event names
	// (game_started, pot_updated, ...) as their message type.
	TypeWelcome MessageType = "welcome"
	TypeError   MessageType = "error"
)

// Error codes sent in ErrorData
const (
	CodeInvalidMessage     = "invalid_message"
	CodeUnknownMessageType = "unknown_message_type"
	CodeInvalidBet         = "invalid_bet"
	CodeGameInProgress     = "game_in_progress"
	CodeNotSeated          = "not_seated"
	CodeNotBetting         = "not_betting"
	CodeAlreadySeated      = "already_seated"
	CodeInvalidName        = "invalid_name"
	CodeInternal           = "internal_error"
)

// ErrEmptyData is returned when decoding a message that carries no payload
var ErrEmptyData = errors.New("message has no data")

// Message is the envelope for every WebSocket frame
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	msg := &Message{Type: messageType, Timestamp: time.Now()}
	if data == nil {
		return msg, nil
	}

	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	msg.Data = dataBytes
	return msg, nil
}

// Decode unmarshals the payload into v
func (m *Message) Decode(v any) error {
	if len(m.Data) == 0 {
		return ErrEmptyData
	}
	return json.Unmarshal(m.Data, v)
}

// Client -> Server payloads

// JoinData asks for a seat under a display name
type JoinData struct {
	PlayerName string `json:"playerName"`
}

// PlaceBetData adds to the sender's bet
type PlaceBetData struct {
	Amount int `json:"amount"`
}

// Server -> Client payloads

// WelcomeData tells a new connection its player ID
type WelcomeData struct {
	PlayerID string `json:"playerId"`
}

// ErrorData reports a rejected message to its sender
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
