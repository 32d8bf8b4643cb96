package rules

import "fmt"

// Point is a zero-based cell coordinate on the board. Y grows downwards.
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Add returns the point offset by other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Equal checks if 2 points are the same x,y coordinate
func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
