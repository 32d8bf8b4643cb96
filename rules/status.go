package rules

// GameStatus is the lifecycle state of a stored game.
type GameStatus string

const (
	// GameStatusRunning represents a game still accepting moves
	GameStatusRunning GameStatus = "running"
	// GameStatusComplete represents a game that is done, the snake died or filled the board
	GameStatusComplete GameStatus = "complete"
	// GameStatusError represents a game that ended because of an error
	GameStatusError GameStatus = "error"
)
