package controller

import (
	"context"
	"testing"

	"github.com/battlesnakeio/classic/rules"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) (*Controller, *rules.Game) {
	c := New(InMemStore())
	g, f, err := c.Create(context.Background(), rules.Config{
		Width:  8,
		Height: 8,
		Start:  &rules.Point{X: 4, Y: 4},
		Seed:   7,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), f.Turn)
	require.Equal(t, rules.GameStatusRunning, g.Status)
	return c, g
}

func TestControllerCreateInvalid(t *testing.T) {
	c := New(InMemStore())
	_, _, err := c.Create(context.Background(), rules.Config{Width: 2, Height: 8})
	require.Equal(t, rules.ErrConfiguration, errors.Cause(err))
}

func TestControllerStatus(t *testing.T) {
	c, g := newTestGame(t)

	got, f, err := c.Status(context.Background(), g.ID)
	require.NoError(t, err)
	require.Equal(t, g, got)
	require.Equal(t, rules.Point{X: 4, Y: 4}, f.Head)

	_, _, err = c.Status(context.Background(), "missing")
	require.Equal(t, ErrNotFound, errors.Cause(err))
}

func TestControllerMove(t *testing.T) {
	ctx := context.Background()
	c, g := newTestGame(t)

	f, outcome, err := c.Move(ctx, g.ID, rules.DirectionUp)
	require.NoError(t, err)
	require.Equal(t, rules.MoveMoved, outcome.Result)
	require.Equal(t, int64(1), f.Turn)
	require.Equal(t, rules.Point{X: 4, Y: 3}, f.Head)

	// No input keeps the heading.
	f, _, err = c.Move(ctx, g.ID, rules.DirectionNone)
	require.NoError(t, err)
	require.Equal(t, rules.Point{X: 4, Y: 2}, f.Head)

	frames, err := c.Frames(ctx, g.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, frames, 3)

	_, last, err := c.Status(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, f, last)
}

func TestControllerMoveNoneStoresNothing(t *testing.T) {
	ctx := context.Background()
	c, g := newTestGame(t)

	f, outcome, err := c.Move(ctx, g.ID, rules.DirectionNone)
	require.NoError(t, err)
	require.Equal(t, rules.MoveNone, outcome.Result)
	require.Equal(t, int64(0), f.Turn)

	frames, err := c.Frames(ctx, g.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, frames, 1)
}

func TestControllerMoveUntilDeath(t *testing.T) {
	ctx := context.Background()
	c, g := newTestGame(t)

	var (
		f       *rules.Frame
		outcome rules.MoveOutcome
		err     error
	)
	for i := 0; i < 8 && outcome.Result != rules.MoveDied; i++ {
		f, outcome, err = c.Move(ctx, g.ID, rules.DirectionLeft)
		require.NoError(t, err)
	}
	require.Equal(t, rules.MoveDied, outcome.Result)
	require.Equal(t, rules.DeathCauseWallCollision, outcome.Cause)
	require.Equal(t, int32(-1), f.Head.X)

	got, err := c.Store.GetGame(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, rules.GameStatusComplete, got.Status)

	_, _, err = c.Move(ctx, g.ID, rules.DirectionUp)
	require.Equal(t, rules.ErrInvalidState, errors.Cause(err))
}

func TestControllerMoveLocked(t *testing.T) {
	ctx := context.Background()
	c, g := newTestGame(t)

	_, err := c.Store.Lock(ctx, g.ID, "")
	require.NoError(t, err)

	_, _, err = c.Move(ctx, g.ID, rules.DirectionUp)
	require.Equal(t, ErrIsLocked, errors.Cause(err))
}

func TestControllerMoveMissing(t *testing.T) {
	c := New(InMemStore())
	_, _, err := c.Move(context.Background(), "missing", rules.DirectionUp)
	require.Equal(t, ErrNotFound, errors.Cause(err))
}

func TestControllerMoveBoardFull(t *testing.T) {
	ctx := context.Background()
	c := New(InMemStore())

	g := &rules.Game{ID: "full", Width: 3, Height: 3, Status: rules.GameStatusRunning}
	f := &rules.Frame{
		Head: rules.Point{X: 1, Y: 2},
		Body: []rules.Point{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
			{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1},
			{X: 0, Y: 2},
		},
		Heading: rules.DirectionRight,
		Food:    &rules.Point{X: 2, Y: 2},
	}
	require.NoError(t, c.Store.CreateGame(ctx, g, []*rules.Frame{f}))

	next, outcome, err := c.Move(ctx, g.ID, rules.DirectionRight)
	require.Equal(t, rules.ErrBoardFull, errors.Cause(err))
	require.True(t, outcome.Grew)
	require.Nil(t, next.Food)
	require.Len(t, next.Body, 8)

	got, last, err := c.Status(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, rules.GameStatusComplete, got.Status)
	require.Equal(t, next, last)
}
