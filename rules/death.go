package rules

// checkForDeath looks at the cell the head is about to enter. Possible death
// options are wall collision and collision with the snake's own body. An
// empty cause means the move is safe.
func checkForDeath(board Board, frame *Frame, head Point) string {
	if deathByOutOfBounds(head, board) {
		return DeathCauseWallCollision
	}
	if deathByBodyCollision(head, frame) {
		return DeathCauseSnakeSelfCollision
	}
	return ""
}

func deathByOutOfBounds(head Point, board Board) bool {
	return !board.Contains(head)
}

func deathByBodyCollision(head Point, frame *Frame) bool {
	return frame.bodyContains(head)
}
