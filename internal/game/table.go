package game

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/showdown/internal/deck"
)

const (
	// Capacity is the number of seats; the hand is dealt when it is reached
	Capacity = 3

	// BoardCards is the number of shared cards completing each five-card hand
	BoardCards = 3

	// DefaultShowdownDelay is how long betting stays open after the first bet
	DefaultShowdownDelay = 10 * time.Second
)

// Phase is the table's stage in its game lifecycle
type Phase int

const (
	Idle Phase = iota
	Dealing
	Betting
	Showdown
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dealing:
		return "dealing"
	case Betting:
		return "betting"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{Idle, Dealing, Betting, Showdown} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Config holds table rules that may vary per deployment
type Config struct {
	// ShowdownDelay is the time between the first bet and the showdown
	ShowdownDelay time.Duration
	// RevealHands sends every player's hole cards to everyone at deal time
	RevealHands bool
}

// DefaultConfig returns the standard table rules
func DefaultConfig() Config {
	return Config{ShowdownDelay: DefaultShowdownDelay}
}

// Option configures a Table
type Option func(*Table)

// WithConfig sets the table rules
func WithConfig(cfg Config) Option {
	return func(t *Table) {
		if cfg.ShowdownDelay <= 0 {
			cfg.ShowdownDelay = DefaultShowdownDelay
		}
		t.cfg = cfg
	}
}

// WithClock sets the clock driving the showdown timer
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) { t.clock = clock }
}

// WithRNG sets the shuffle source
func WithRNG(rng *rand.Rand) Option {
	return func(t *Table) { t.deck = deck.NewDeck(rng) }
}

// Table is the state machine for a single table. It is not safe for
// concurrent use: drive it from one goroutine, normally through a Loop.
type Table struct {
	cfg     Config
	logger  *log.Logger
	clock   quartz.Clock
	events  Broadcaster
	deck    *deck.Deck
	enqueue func(func())

	phase     Phase
	players   []Player
	turnIndex int
	ledger    *Ledger
	hands     map[string][]deck.Card
	board     []deck.Card
	handID    string

	// round increments on every deal and reset; a showdown timer only acts
	// if the round it was armed in is still current
	round uint64
	timer *quartz.Timer
}

// NewTable creates an idle table
func NewTable(logger *log.Logger, events Broadcaster, opts ...Option) *Table {
	if events == nil {
		events = NopBroadcaster{}
	}

	t := &Table{
		cfg:     DefaultConfig(),
		logger:  logger.WithPrefix("table"),
		clock:   quartz.NewReal(),
		events:  events,
		enqueue: func(fn func()) { fn() },
		ledger:  NewLedger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.deck == nil {
		t.deck = deck.NewDeck(nil)
	}
	return t
}

// Phase returns the current phase
func (t *Table) Phase() Phase {
	return t.phase
}

// Players returns the seated players in seat order
func (t *Table) Players() []Player {
	return slices.Clone(t.players)
}

// TurnIndex returns the seat whose turn it is
func (t *Table) TurnIndex() int {
	return t.turnIndex
}

// Pot returns the current pot
func (t *Table) Pot() int {
	return t.ledger.Pot()
}

// Ledger exposes the betting ledger for inspection
func (t *Table) Ledger() *Ledger {
	return t.ledger
}

// HandOf returns a copy of a player's hole cards
func (t *Table) HandOf(playerID string) []deck.Card {
	return slices.Clone(t.hands[playerID])
}

// Board returns a copy of the shared cards
func (t *Table) Board() []deck.Card {
	return slices.Clone(t.board)
}

// ShowdownPending reports whether a showdown timer is armed
func (t *Table) ShowdownPending() bool {
	return t.timer != nil
}

// Join seats a player. Joins are only accepted while the table is idle;
// filling the last seat deals the hand.
func (t *Table) Join(playerID, name string) error {
	if t.phase != Idle {
		return ErrGameInProgress
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	if t.seatOf(playerID) >= 0 {
		return ErrAlreadySeated
	}

	t.players = append(t.players, Player{ID: playerID, Name: name})
	t.logger.Info("Player joined", "player", playerID, "name", name, "seated", len(t.players))
	t.events.Broadcast(MessageEvent{Text: fmt.Sprintf("%s joined the table (%d/%d)", name, len(t.players), Capacity)})

	if len(t.players) == Capacity {
		t.deal()
	}
	return nil
}

// PlaceBet records a bet for a seated player. The first accepted bet of the
// round arms the showdown timer.
func (t *Table) PlaceBet(playerID string, amount int) error {
	if t.phase != Betting {
		return ErrNotBetting
	}
	if t.seatOf(playerID) < 0 {
		return ErrNotSeated
	}

	total, err := t.ledger.PlaceBet(playerID, amount)
	if err != nil {
		return err
	}

	t.logger.Debug("Bet placed", "hand", t.handID, "player", playerID, "amount", amount, "pot", t.ledger.Pot())
	t.events.Broadcast(PotUpdatedEvent{
		HandID:      t.handID,
		PlayerID:    playerID,
		PlayerTotal: total,
		Pot:         t.ledger.Pot(),
	})

	if t.timer == nil {
		t.armShowdown()
	}
	return nil
}

// AdvanceTurn passes the turn to the next seat
func (t *Table) AdvanceTurn(playerID string) error {
	if t.phase != Betting {
		return ErrNotBetting
	}
	if t.seatOf(playerID) < 0 {
		return ErrNotSeated
	}

	next, err := NextTurn(t.turnIndex, len(t.players))
	if err != nil {
		return err
	}
	t.turnIndex = next

	t.events.Broadcast(TurnChangedEvent{
		HandID:    t.handID,
		TurnIndex: next,
		PlayerID:  t.players[next].ID,
	})
	return nil
}

// RequestState sends the table state to the requester only. Only the
// requester's own hole cards are included.
func (t *Table) RequestState(playerID string) {
	state := t.Snapshot()
	state.Hand = t.HandOf(playerID)
	t.events.Send(playerID, state)
}

// Snapshot returns the public view of the table
func (t *Table) Snapshot() StateEvent {
	players := t.Players()
	if players == nil {
		players = []Player{}
	}
	return StateEvent{
		Phase:     t.phase,
		HandID:    t.handID,
		Board:     t.Board(),
		TurnIndex: t.turnIndex,
		Pot:       t.ledger.Pot(),
		Players:   players,
		Bets:      t.ledger.Entries(),
	}
}

// Disconnect removes a player. Leaving during a hand aborts it with no
// winner and resets the table; the remaining players keep their seats.
func (t *Table) Disconnect(playerID string) {
	seat := t.seatOf(playerID)
	if seat < 0 {
		return
	}
	leaver := t.players[seat]
	t.players = slices.Delete(t.players, seat, seat+1)

	if t.phase == Idle {
		t.logger.Info("Player left", "player", playerID, "name", leaver.Name)
		t.events.Broadcast(MessageEvent{Text: fmt.Sprintf("%s left the table", leaver.Name)})
		return
	}

	t.logger.Warn("Player left mid-hand, aborting", "hand", t.handID, "player", playerID, "phase", t.phase)
	t.events.Broadcast(GameEndedEvent{
		HandID:  t.handID,
		Aborted: true,
		Reason:  fmt.Sprintf("%s left the table. Game over.", leaver.Name),
	})
	t.reset(false)
}

// Close stops any pending showdown timer
func (t *Table) Close() {
	t.cancelShowdown()
}

func (t *Table) deal() {
	t.phase = Dealing
	t.round++
	t.handID = uuid.Must(uuid.NewV7()).String()
	logger := t.logger.With("hand", t.handID)

	t.deck.Reset()
	hands, err := deck.DealHands(t.deck, t.playerIDs())
	if err != nil {
		t.abortDeal(err)
		return
	}
	board, err := t.deck.DealBoard(BoardCards)
	if err != nil {
		t.abortDeal(err)
		return
	}

	t.hands = hands
	t.board = board
	t.turnIndex = 0
	t.ledger.Reset()
	t.phase = Betting

	logger.Info("Hand dealt", "players", len(t.players), "board", deck.FormatCards(board))

	for _, p := range t.players {
		event := GameStartedEvent{
			HandID:    t.handID,
			Hand:      t.HandOf(p.ID),
			Board:     t.Board(),
			TurnIndex: t.turnIndex,
			Players:   t.Players(),
		}
		if t.cfg.RevealHands {
			event.Hands = make(map[string][]deck.Card, len(t.hands))
			for id, cards := range t.hands {
				event.Hands[id] = slices.Clone(cards)
			}
		}
		t.events.Send(p.ID, event)
	}
	t.events.Broadcast(MessageEvent{Text: "The game has started! Everyone has been dealt two cards."})
}

// abortDeal cannot happen with a full deck at capacity but keeps the table
// consistent if it ever does.
func (t *Table) abortDeal(err error) {
	t.logger.Error("Deal failed", "hand", t.handID, "error", err)
	t.events.Broadcast(GameEndedEvent{HandID: t.handID, Aborted: true, Reason: "deal failed"})
	t.reset(true)
}

func (t *Table) armShowdown() {
	round := t.round
	t.timer = t.clock.AfterFunc(t.cfg.ShowdownDelay, func() {
		t.enqueue(func() { t.fireShowdown(round) })
	}, "table", "showdown")
	t.logger.Debug("Showdown armed", "hand", t.handID, "delay", t.cfg.ShowdownDelay)
}

func (t *Table) cancelShowdown() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Table) fireShowdown(round uint64) {
	if round != t.round || t.phase != Betting {
		t.logger.Debug("Discarding stale showdown", "round", round, "current", t.round, "phase", t.phase)
		return
	}
	t.timer = nil
	t.showdown()
}

func (t *Table) showdown() {
	t.phase = Showdown

	contenders := make([]Contender, 0, len(t.players))
	for _, p := range t.players {
		contenders = append(contenders, Contender{
			PlayerID: p.ID,
			Name:     p.Name,
			Hole:     t.hands[p.ID],
			Board:    t.board,
		})
	}

	outcome, err := Resolve(contenders, t.ledger.Pot())
	if err != nil {
		t.logger.Error("Showdown failed", "hand", t.handID, "error", err)
		t.events.Broadcast(GameEndedEvent{HandID: t.handID, Aborted: true, Reason: "showdown failed"})
		t.reset(true)
		return
	}

	t.logger.Info("Showdown", "hand", t.handID, "winner", outcome.WinnerName, "draw", outcome.Draw, "pot", outcome.Pot)
	t.events.Broadcast(GameEndedEvent{
		HandID:     t.handID,
		Winner:     outcome.Winner,
		WinnerName: outcome.WinnerName,
		Draw:       outcome.Draw,
		Tied:       outcome.Tied,
		Pot:        outcome.Pot,
		Hands:      outcome.Hands,
	})
	t.reset(true)
}

// reset returns the table to Idle. After a showdown the seats are cleared
// and players join again for the next hand.
func (t *Table) reset(clearSeats bool) {
	t.cancelShowdown()
	t.round++
	t.phase = Idle
	t.hands = nil
	t.board = nil
	t.handID = ""
	t.turnIndex = 0
	t.ledger.Reset()
	if clearSeats {
		t.players = nil
	}
	t.events.Broadcast(TableResetEvent{})
}

func (t *Table) seatOf(playerID string) int {
	return slices.IndexFunc(t.players, func(p Player) bool { return p.ID == playerID })
}

func (t *Table) playerIDs() []string {
	ids := make([]string, len(t.players))
	for i, p := range t.players {
		ids[i] = p.ID
	}
	return ids
}
