package game

// LedgerEntry is one player's cumulative bet for the current round
type LedgerEntry struct {
	PlayerID string `json:"playerId"`
	Amount   int    `json:"amount"`
}

// Ledger tracks per-player bets and the pot. The pot always equals the sum
// of all entries.
//
// There is no upper bound and no balance check on bets: players have no
// chip stacks.
type Ledger struct {
	bets  map[string]int
	order []string
	pot   int
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{bets: make(map[string]int)}
}

// PlaceBet adds amount to the player's entry and to the pot, returning the
// player's new total.
func (l *Ledger) PlaceBet(playerID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, &InvalidBetError{Amount: amount}
	}

	if _, ok := l.bets[playerID]; !ok {
		l.order = append(l.order, playerID)
	}
	l.bets[playerID] += amount
	l.pot += amount

	return l.bets[playerID], nil
}

// Pot returns the total of all bets
func (l *Ledger) Pot() int {
	return l.pot
}

// BetOf returns a player's cumulative bet, zero if they have not bet
func (l *Ledger) BetOf(playerID string) int {
	return l.bets[playerID]
}

// Entries returns the ledger in the order players first bet
func (l *Ledger) Entries() []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(l.order))
	for _, id := range l.order {
		entries = append(entries, LedgerEntry{PlayerID: id, Amount: l.bets[id]})
	}
	return entries
}

// Sum recomputes the pot from the entries
func (l *Ledger) Sum() int {
	total := 0
	for _, amount := range l.bets {
		total += amount
	}
	return total
}

// Reset clears all entries and the pot
func (l *Ledger) Reset() {
	clear(l.bets)
	l.order = l.order[:0]
	l.pot = 0
}
