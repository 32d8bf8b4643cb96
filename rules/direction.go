package rules

import "github.com/pkg/errors"

// Direction is one of the four compass moves. DirectionNone stands for "no
// input this tick" and, on a frame, for "no move applied yet".
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

var directionNames = map[Direction]string{
	DirectionNone:  "",
	DirectionUp:    "up",
	DirectionDown:  "down",
	DirectionLeft:  "left",
	DirectionRight: "right",
}

var directionVectors = map[Direction]Point{
	DirectionUp:    {X: 0, Y: -1},
	DirectionDown:  {X: 0, Y: 1},
	DirectionLeft:  {X: -1, Y: 0},
	DirectionRight: {X: 1, Y: 0},
}

// Directions lists the four real moves.
var Directions = []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok && name != "" {
		return name
	}
	return "none"
}

// Valid reports whether d is one of the four real moves.
func (d Direction) Valid() bool {
	_, ok := directionVectors[d]
	return ok
}

// Opposite returns the reverse move. DirectionNone has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	return DirectionNone
}

// Vector is the unit step for the move, the zero point for DirectionNone.
func (d Direction) Vector() Point {
	return directionVectors[d]
}

// MarshalText encodes the direction as its lower case name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(directionNames[d]), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (d *Direction) UnmarshalText(text []byte) error {
	for dir, name := range directionNames {
		if name == string(text) {
			*d = dir
			return nil
		}
	}
	return errors.Errorf("rules: unknown direction %q", string(text))
}
