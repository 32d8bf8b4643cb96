package rules

// CheckForGameOver checks if the game has ended, the snake is dead or there is
// no room left for food.
func CheckForGameOver(frame *Frame) bool {
	return frame == nil || frame.Complete()
}
