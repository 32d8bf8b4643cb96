package rules

import (
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

// Game is the stored description of a single game session. The snake state
// itself lives in frames.
type Game struct {
	ID     string     `json:"id"`
	Width  int32      `json:"width"`
	Height int32      `json:"height"`
	Seed   int64      `json:"seed"`
	Status GameStatus `json:"status"`
}

// Board returns the playing field of the game.
func (g *Game) Board() Board {
	return Board{Width: g.Width, Height: g.Height}
}

// Config holds the settings for a new game. A nil Start puts the head in the
// middle of the board.
type Config struct {
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
	Start  *Point `json:"start,omitempty"`
	Seed   int64  `json:"seed"`
}

// CreateInitialGame creates a new game and its turn 0 frame: a lone head with
// no body, no heading and one piece of food.
func CreateInitialGame(cfg Config) (*Game, *Frame, error) {
	board := Board{Width: cfg.Width, Height: cfg.Height}
	if err := board.Validate(); err != nil {
		return nil, nil, err
	}

	start := Point{X: board.Width / 2, Y: board.Height / 2}
	if cfg.Start != nil {
		start = *cfg.Start
	}
	if !board.Contains(start) {
		return nil, nil, errors.Wrapf(ErrConfiguration, "start %s is outside the %dx%d board",
			start, board.Width, board.Height)
	}

	game := &Game{
		ID:     uuid.NewV4().String(),
		Width:  board.Width,
		Height: board.Height,
		Seed:   cfg.Seed,
		Status: GameStatusRunning,
	}
	frame := &Frame{
		Turn: 0,
		Head: start,
		Body: []Point{},
	}

	food, err := placeFood(board, frame, foodSource(game.Seed, frame.Turn))
	if err != nil {
		return nil, nil, err
	}
	frame.Food = &food

	log.WithFields(log.Fields{
		"GameID": game.ID,
		"Width":  game.Width,
		"Height": game.Height,
		"Head":   frame.Head,
		"Food":   food,
	}).Info("game created")

	return game, frame, nil
}
