package rules

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// GameTick runs the game one tick and returns the next frame. The last frame
// is never modified. When there is no move to make the last frame is
// returned as is with a MoveNone outcome.
//
// If the snake eats the last free cell the next frame is returned together
// with ErrBoardFull; it has no food and the game cannot continue.
func GameTick(game *Game, lastFrame *Frame, move Direction) (*Frame, MoveOutcome, error) {
	if game == nil || lastFrame == nil {
		return nil, MoveOutcome{}, errors.Wrap(ErrInvalidState, "game or previous frame is nil")
	}
	if lastFrame.Death != nil {
		return nil, MoveOutcome{}, errors.Wrapf(ErrInvalidState, "snake died on turn %d", lastFrame.Death.Turn)
	}
	if lastFrame.Food == nil {
		return nil, MoveOutcome{}, errors.Wrap(ErrInvalidState, "board is full")
	}

	heading := effectiveHeading(lastFrame.Heading, move)
	if heading == DirectionNone {
		return lastFrame, MoveOutcome{Result: MoveNone}, nil
	}

	board := game.Board()
	food := *lastFrame.Food
	nextFrame := &Frame{
		Turn:    lastFrame.Turn + 1,
		Head:    lastFrame.Head.Add(heading.Vector()),
		Heading: heading,
		Food:    &food,
	}
	log.WithFields(log.Fields{
		"GameID":  game.ID,
		"Turn":    nextFrame.Turn,
		"Move":    move,
		"Heading": heading,
	}).Debug("move")

	if cause := checkForDeath(board, lastFrame, nextFrame.Head); cause != "" {
		nextFrame.Body = append([]Point{}, lastFrame.Body...)
		nextFrame.Death = &Death{
			Turn:  nextFrame.Turn,
			Cause: cause,
		}
		log.WithFields(log.Fields{
			"GameID": game.ID,
			"Turn":   nextFrame.Turn,
			"Head":   nextFrame.Head,
			"Cause":  cause,
		}).Info("snake died")
		return nextFrame, MoveOutcome{Result: MoveDied, Cause: cause}, nil
	}

	grew := nextFrame.Head.Equal(food)
	nextFrame.Body = updateBody(lastFrame.Body, lastFrame.Head, grew)
	outcome := MoveOutcome{Result: MoveMoved, Grew: grew}
	if !grew {
		return nextFrame, outcome, nil
	}

	log.WithFields(log.Fields{
		"GameID": game.ID,
		"Turn":   nextFrame.Turn,
		"Food":   food,
		"Length": len(nextFrame.Body) + 1,
	}).Info("snake ate")

	p, err := placeFood(board, nextFrame, foodSource(game.Seed, nextFrame.Turn))
	if err != nil {
		nextFrame.Food = nil
		return nextFrame, outcome, err
	}
	nextFrame.Food = &p
	return nextFrame, outcome, nil
}
