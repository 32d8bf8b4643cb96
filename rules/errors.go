package rules

import "github.com/pkg/errors"

var (
	// ErrInvalidState is returned when a finished game is ticked.
	ErrInvalidState = errors.New("rules: invalid state")
	// ErrBoardFull is returned when no free cell is left for food.
	ErrBoardFull = errors.New("rules: board full")
	// ErrConfiguration is returned for unusable game settings.
	ErrConfiguration = errors.New("rules: invalid configuration")
)
