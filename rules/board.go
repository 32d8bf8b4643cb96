package rules

import "github.com/pkg/errors"

// MinBoardSize is the smallest allowed extent on either axis.
const MinBoardSize = 3

// Board is the fixed playing field, walls sit just outside of it.
type Board struct {
	Width  int32 `json:"width"`
	Height int32 `json:"height"`
}

// Validate checks the board is large enough to play on.
func (b Board) Validate() error {
	if b.Width < MinBoardSize || b.Height < MinBoardSize {
		return errors.Wrapf(ErrConfiguration, "board %dx%d is smaller than %dx%d",
			b.Width, b.Height, MinBoardSize, MinBoardSize)
	}
	return nil
}

// Contains reports whether p lies inside the walls.
func (b Board) Contains(p Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Area is the number of cells on the board.
func (b Board) Area() int {
	return int(b.Width) * int(b.Height)
}
