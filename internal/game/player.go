package game

// Player is a seated participant. ID is scoped to the player's connection.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
