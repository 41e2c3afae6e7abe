package game

// NextTurn returns the seat index after current, wrapping at playerCount.
func NextTurn(current, playerCount int) (int, error) {
	if playerCount <= 0 {
		return 0, ErrNoPlayers
	}
	return (current + 1) % playerCount, nil
}
