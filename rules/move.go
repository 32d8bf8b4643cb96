package rules

// MoveResult says what a single tick did.
type MoveResult string

const (
	// MoveNone is returned when there was no input and no heading to keep
	MoveNone MoveResult = "none"
	// MoveMoved is returned when the snake advanced one cell
	MoveMoved MoveResult = "moved"
	// MoveDied is returned when the move killed the snake
	MoveDied MoveResult = "died"
)

// MoveOutcome reports the result of a tick. Grew is only set for MoveMoved,
// Cause only for MoveDied.
type MoveOutcome struct {
	Result MoveResult `json:"result"`
	Grew   bool       `json:"grew"`
	Cause  string     `json:"cause,omitempty"`
}

// effectiveHeading picks the direction a tick moves in. A missing request or
// a request to reverse into the neck keeps the current heading. Before the
// first move any direction is allowed.
func effectiveHeading(current, requested Direction) Direction {
	if !requested.Valid() {
		return current
	}
	if current != DirectionNone && requested == current.Opposite() {
		return current
	}
	return requested
}

// updateBody pushes the previous head onto the neck end and drops the tail
// unless the snake grew. A snake without a body stays without one.
func updateBody(body []Point, previousHead Point, grew bool) []Point {
	next := make([]Point, 0, len(body)+1)
	next = append(next, body...)
	next = append(next, previousHead)
	if !grew {
		next = next[1:]
	}
	return next
}
