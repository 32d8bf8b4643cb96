package rules

import "math/rand"

// drawsPerCell bounds rejection sampling before falling back to picking from
// the enumerated free cells.
const drawsPerCell = 4

// foodSource returns the random source used to place food on a given turn.
// Deriving it from the seed and the turn keeps placement reproducible from
// any stored frame.
func foodSource(seed, turn int64) *rand.Rand {
	mix := int64(uint64(turn) * 0x9E3779B97F4A7C15)
	return rand.New(rand.NewSource(seed ^ mix))
}

// placeFood picks a uniformly random cell not covered by the snake.
func placeFood(board Board, frame *Frame, rng *rand.Rand) (Point, error) {
	occupied := frame.occupiedSet()
	if len(occupied) >= board.Area() {
		return Point{}, ErrBoardFull
	}

	for i := 0; i < drawsPerCell*board.Area(); i++ {
		p := Point{X: rng.Int31n(board.Width), Y: rng.Int31n(board.Height)}
		if _, taken := occupied[p]; !taken {
			return p, nil
		}
	}

	open := getUnoccupiedPoints(board, occupied)
	if len(open) == 0 {
		return Point{}, ErrBoardFull
	}
	return open[rng.Intn(len(open))], nil
}

func getUnoccupiedPoints(board Board, occupied map[Point]struct{}) []Point {
	candidatePoints := make([]Point, 0, board.Area()-len(occupied))
	for x := int32(0); x < board.Width; x++ {
		for y := int32(0); y < board.Height; y++ {
			p := Point{X: x, Y: y}
			if _, taken := occupied[p]; !taken {
				candidatePoints = append(candidatePoints, p)
			}
		}
	}
	return candidatePoints
}
