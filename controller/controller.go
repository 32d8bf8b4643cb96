// Package controller runs games on top of a Store. It serializes moves on a
// game with the store's lock so that any number of API processes can share
// one backend.
package controller

import (
	"context"

	"github.com/battlesnakeio/classic/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// New will initialize a new Controller.
func New(store Store) *Controller {
	return &Controller{Store: store}
}

// Controller applies game operations to a store.
type Controller struct {
	Store Store
}

// Create builds a new game and stores it with its first frame.
func (c *Controller) Create(ctx context.Context, cfg rules.Config) (*rules.Game, *rules.Frame, error) {
	game, frame, err := rules.CreateInitialGame(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := c.Store.CreateGame(ctx, game, []*rules.Frame{frame}); err != nil {
		return nil, nil, errors.Wrap(err, "unable to store new game")
	}
	return game, frame, nil
}

// Status returns the game and its latest frame.
func (c *Controller) Status(ctx context.Context, id string) (*rules.Game, *rules.Frame, error) {
	game, err := c.Store.GetGame(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	frame, err := c.lastFrame(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return game, frame, nil
}

// Frames lists stored frames, see Store.ListGameFrames.
func (c *Controller) Frames(ctx context.Context, id string, limit, offset int) ([]*rules.Frame, error) {
	return c.Store.ListGameFrames(ctx, id, limit, offset)
}

// Move plays one tick of the game while holding its lock. When the move
// fills the board the final frame is stored and returned along with
// rules.ErrBoardFull.
func (c *Controller) Move(ctx context.Context, id string, move rules.Direction) (*rules.Frame, rules.MoveOutcome, error) {
	token, err := c.Store.Lock(ctx, id, "")
	if err != nil {
		return nil, rules.MoveOutcome{}, err
	}
	defer func() {
		if err := c.Store.Unlock(ctx, id, token); err != nil {
			log.WithError(err).WithField("game", id).Warn("unable to unlock game")
		}
	}()

	game, last, err := c.Status(ctx, id)
	if err != nil {
		return nil, rules.MoveOutcome{}, err
	}

	next, outcome, tickErr := rules.GameTick(game, last, move)
	if tickErr != nil && errors.Cause(tickErr) != rules.ErrBoardFull {
		return nil, outcome, tickErr
	}
	if outcome.Result == rules.MoveNone {
		return next, outcome, nil
	}

	if err := c.Store.PushGameFrame(ctx, id, next); err != nil {
		return nil, outcome, errors.Wrap(err, "unable to store frame")
	}

	if rules.CheckForGameOver(next) {
		log.WithFields(log.Fields{
			"game":  id,
			"turn":  next.Turn,
			"score": next.Score(),
		}).Info("game over")
		if err := c.Store.SetGameStatus(ctx, id, rules.GameStatusComplete); err != nil {
			return nil, outcome, errors.Wrap(err, "unable to complete game")
		}
	}
	return next, outcome, tickErr
}

func (c *Controller) lastFrame(ctx context.Context, id string) (*rules.Frame, error) {
	frames, err := c.Store.ListGameFrames(ctx, id, 1, -1)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, errors.Wrapf(rules.ErrInvalidState, "game %s has no frames", id)
	}
	return frames[0], nil
}
