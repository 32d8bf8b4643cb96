package rules

// Role classifies an occupied cell for presentation.
type Role string

const (
	RoleHead Role = "head"
	RoleBody Role = "body"
	RoleTail Role = "tail"
)

// Segment is an occupied cell annotated with its role and the way it points.
type Segment struct {
	Point       Point     `json:"point"`
	Role        Role      `json:"role"`
	Orientation Direction `json:"orientation"`
}

// orientations maps the offset from a segment to its reference neighbour onto
// the direction the segment points.
var orientations = map[Point]Direction{
	{X: 0, Y: -1}: DirectionUp,
	{X: 0, Y: 1}:  DirectionDown,
	{X: -1, Y: 0}: DirectionLeft,
	{X: 1, Y: 0}:  DirectionRight,
}

// orientationBetween returns the direction from one cell to an adjacent one,
// DirectionNone if they are not 4-adjacent.
func orientationBetween(from, to Point) Direction {
	return orientations[Point{X: to.X - from.X, Y: to.Y - from.Y}]
}

func headSegment(f *Frame) Segment {
	orientation := f.Heading
	if !orientation.Valid() {
		orientation = DirectionUp
	}
	return Segment{Point: f.Head, Role: RoleHead, Orientation: orientation}
}

// bodySegment resolves body[i] against the segment one step closer to the
// head, or the head itself for the neck.
func bodySegment(f *Frame, i int) Segment {
	ref := f.Head
	if i+1 < len(f.Body) {
		ref = f.Body[i+1]
	}
	role := RoleBody
	if i == 0 {
		role = RoleTail
	}
	return Segment{
		Point:       f.Body[i],
		Role:        role,
		Orientation: orientationBetween(f.Body[i], ref),
	}
}

// OrientationOf resolves the occupied cell p. The head wins when a dead
// snake's head sits on its own body.
func OrientationOf(f *Frame, p Point) (Segment, bool) {
	if f.Head.Equal(p) {
		return headSegment(f), true
	}
	for i, b := range f.Body {
		if b.Equal(p) {
			return bodySegment(f, i), true
		}
	}
	return Segment{}, false
}

// Segments resolves every occupied cell, from the tail to the head.
func Segments(f *Frame) []Segment {
	segments := make([]Segment, 0, len(f.Body)+1)
	for i := range f.Body {
		segments = append(segments, bodySegment(f, i))
	}
	return append(segments, headSegment(f))
}
