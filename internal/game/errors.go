package game

import (
	"errors"
	"fmt"
)

var (
	// ErrGameInProgress is returned when a player tries to join while a hand is running
	ErrGameInProgress = errors.New("game already in progress")

	// ErrNotBetting is returned for betting actions outside the betting phase
	ErrNotBetting = errors.New("no betting round in progress")

	// ErrNotSeated is returned when the acting connection has no seat
	ErrNotSeated = errors.New("player is not seated at the table")

	// ErrAlreadySeated is returned when a seated player joins again
	ErrAlreadySeated = errors.New("player is already seated")

	// ErrInvalidName is returned when a join carries an empty display name
	ErrInvalidName = errors.New("player name required")

	// ErrNoPlayers is returned by turn rotation and showdown with nobody seated
	ErrNoPlayers = errors.New("no players")

	// ErrLoopStopped is returned by Loop.Do once the loop has exited
	ErrLoopStopped = errors.New("table loop stopped")
)

// InvalidBetError is returned for non-positive bet amounts. The ledger is
// left unchanged.
type InvalidBetError struct {
	Amount int
}

func (e *InvalidBetError) Error() string {
	return fmt.Sprintf("invalid bet amount %d: must be positive", e.Amount)
}
