package rules

// Death records when and how the snake died.
type Death struct {
	Turn  int64  `json:"turn"`
	Cause string `json:"cause"`
}

// Frame is the full snake state after a turn. Body is ordered from the tail
// (index 0) to the segment next to the head and never contains the head
// while the snake is alive.
type Frame struct {
	Turn    int64     `json:"turn"`
	Head    Point     `json:"head"`
	Body    []Point   `json:"body"`
	Heading Direction `json:"heading"`
	Food    *Point    `json:"food,omitempty"`
	Death   *Death    `json:"death,omitempty"`
}

// Alive reports whether the snake is still alive.
func (f *Frame) Alive() bool {
	return f.Death == nil
}

// Complete reports whether no further turn can be played, either because
// the snake died or because there was no cell left for food.
func (f *Frame) Complete() bool {
	return f.Death != nil || f.Food == nil
}

// Score is the number of apples eaten so far.
func (f *Frame) Score() int {
	return len(f.Body)
}

// Occupied returns the head and every body segment.
func (f *Frame) Occupied() []Point {
	points := make([]Point, 0, len(f.Body)+1)
	points = append(points, f.Body...)
	return append(points, f.Head)
}

func (f *Frame) occupiedSet() map[Point]struct{} {
	set := make(map[Point]struct{}, len(f.Body)+1)
	for _, p := range f.Occupied() {
		set[p] = struct{}{}
	}
	return set
}

// bodyContains reports whether p is one of the body segments.
func (f *Frame) bodyContains(p Point) bool {
	for _, b := range f.Body {
		if b.Equal(p) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	clone := *f
	clone.Body = make([]Point, len(f.Body))
	copy(clone.Body, f.Body)
	if f.Food != nil {
		food := *f.Food
		clone.Food = &food
	}
	if f.Death != nil {
		death := *f.Death
		clone.Death = &death
	}
	return &clone
}
