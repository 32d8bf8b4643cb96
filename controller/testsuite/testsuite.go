// Package testsuite holds the behavior every controller.Store must share.
package testsuite

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/battlesnakeio/classic/controller"
	"github.com/battlesnakeio/classic/rules"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
)

func newGame() *rules.Game {
	return &rules.Game{
		ID:     uuid.NewV4().String(),
		Width:  10,
		Height: 8,
		Seed:   5,
		Status: rules.GameStatusRunning,
	}
}

func frame(turn int64) *rules.Frame {
	return &rules.Frame{
		Turn:    turn,
		Head:    rules.Point{X: 3, Y: 3 - int32(turn)},
		Body:    []rules.Point{},
		Heading: rules.DirectionUp,
		Food:    &rules.Point{X: 7, Y: 7},
	}
}

func testStoreLock(t *testing.T, s controller.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	// Lock random key.
	tok, err := s.Lock(ctx, key, "")
	require.Nil(t, err)
	require.NotEmpty(t, tok)

	// Lock with valid token, no error same token returned.
	tok2, err := s.Lock(ctx, key, tok)
	require.Nil(t, err)
	require.Equal(t, tok, tok2)

	// Lock without token while held.
	_, err = s.Lock(ctx, key, "")
	require.Equal(t, controller.ErrIsLocked, errors.Cause(err))

	// Unlock without valid token returns error.
	err = s.Unlock(ctx, key, "")
	require.Error(t, err)

	// Unlock with valid token no error.
	err = s.Unlock(ctx, key, tok)
	require.Nil(t, err)

	// Lock is free again.
	_, err = s.Lock(ctx, key, "")
	require.Nil(t, err)

	// Unlock where lock doesn't exist returns no error.
	err = s.Unlock(ctx, key+"-missing", "")
	require.Nil(t, err)
}

func testStoreLockExpiry(t *testing.T, s controller.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	// Negative expiry, will always be expired.
	controller.LockExpiry = -10 * time.Second
	defer func() { controller.LockExpiry = 1 * time.Second }()

	// Lock random key.
	tok, err := s.Lock(ctx, key, "")
	require.Nil(t, err)
	require.NotEmpty(t, tok)

	// Lock (with token) has expired.
	tok2, err := s.Lock(ctx, key, tok)
	require.Nil(t, err)
	require.Equal(t, tok, tok2)

	// Unlock (no token) has expired.
	err = s.Unlock(ctx, key, "")
	require.NoError(t, err)

	// Lock (no token) has expired.
	_, err = s.Lock(ctx, key, "")
	require.Nil(t, err)

	// Unlock (no token) has expired.
	err = s.Unlock(ctx, key, "")
	require.Nil(t, err)
}

func testStoreGames(t *testing.T, s controller.Store) {
	g := newGame()
	ctx := context.Background()

	// Create and fetch a game.
	err := s.CreateGame(ctx, g, []*rules.Frame{frame(0)})
	require.Nil(t, err)
	got, err := s.GetGame(ctx, g.ID)
	require.Nil(t, err)
	require.Equal(t, g, got)

	// NotFound error thrown.
	_, err = s.GetGame(ctx, g.ID+"-missing")
	require.Equal(t, controller.ErrNotFound, errors.Cause(err))
}

func testStoreGameStatus(t *testing.T, s controller.Store) {
	g := newGame()
	ctx := context.Background()

	err := s.CreateGame(ctx, g, []*rules.Frame{frame(0)})
	require.Nil(t, err)

	err = s.SetGameStatus(ctx, g.ID, rules.GameStatusComplete)
	require.Nil(t, err)
	got, err := s.GetGame(ctx, g.ID)
	require.Nil(t, err)
	require.Equal(t, rules.GameStatusComplete, got.Status)

	err = s.SetGameStatus(ctx, g.ID+"-missing", rules.GameStatusError)
	require.Equal(t, controller.ErrNotFound, errors.Cause(err))
}

func testStoreGameFrames(t *testing.T, s controller.Store) {
	g := newGame()
	ctx := context.Background()

	// Create and fetch a game.
	err := s.CreateGame(ctx, g, []*rules.Frame{frame(0)})
	require.Nil(t, err)

	// Read game frames, too high offset.
	frames, err := s.ListGameFrames(ctx, g.ID, 10, 100)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	// Read game frames, 0 offset.
	frames, err = s.ListGameFrames(ctx, g.ID, 10, 0)
	require.Nil(t, err)
	require.Equal(t, []*rules.Frame{frame(0)}, frames)

	// Push game frames.
	err = s.PushGameFrame(ctx, g.ID, frame(1))
	require.Nil(t, err)
	err = s.PushGameFrame(ctx, g.ID, frame(2))
	require.Nil(t, err)

	// Read the game frames.
	frames, err = s.ListGameFrames(ctx, g.ID, 10, 0)
	require.Nil(t, err)
	require.Equal(t, []*rules.Frame{frame(0), frame(1), frame(2)}, frames)

	// Read a page.
	frames, err = s.ListGameFrames(ctx, g.ID, 1, 1)
	require.Nil(t, err)
	require.Equal(t, []*rules.Frame{frame(1)}, frames)

	// Read the last frame.
	frames, err = s.ListGameFrames(ctx, g.ID, 1, -1)
	require.Nil(t, err)
	require.Equal(t, []*rules.Frame{frame(2)}, frames)

	// Read game frames that don't exist.
	frames, err = s.ListGameFrames(ctx, g.ID+"-missing", 1, 0)
	require.Equal(t, controller.ErrNotFound, errors.Cause(err))
	require.Equal(t, 0, len(frames))

	// Push to a game that doesn't exist.
	err = s.PushGameFrame(ctx, g.ID+"-missing", frame(0))
	require.Equal(t, controller.ErrNotFound, errors.Cause(err))
}

func testStoreFrameSequence(t *testing.T, s controller.Store) {
	g := newGame()
	ctx := context.Background()

	err := s.CreateGame(ctx, g, []*rules.Frame{frame(0)})
	require.Nil(t, err)

	// Repeated turn.
	err = s.PushGameFrame(ctx, g.ID, frame(0))
	require.Equal(t, controller.ErrInvalidSequence, errors.Cause(err))

	// Skipped turn.
	err = s.PushGameFrame(ctx, g.ID, frame(2))
	require.Equal(t, controller.ErrInvalidSequence, errors.Cause(err))

	frames, err := s.ListGameFrames(ctx, g.ID, 10, 0)
	require.Nil(t, err)
	require.Len(t, frames, 1)
}

func testStoreConcurrentWriters(t *testing.T, s controller.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	var ok uint32 // How many got the lock.
	var wg sync.WaitGroup
	wg.Add(20)

	for i := 0; i < 20; i++ {
		go func() {
			_, errl := s.Lock(ctx, key, "")
			if errl == nil {
				atomic.AddUint32(&ok, 1)
			}
			wg.Done()
		}()
	}

	wg.Wait()

	require.Equal(t, uint32(1), ok)
}

// Suite will execute the store testsuite.
func Suite(t *testing.T, s controller.Store, pretest func()) {
	s = controller.InstrumentStore(s)
	t.Run("Lock", func(t *testing.T) { pretest(); testStoreLock(t, s) })
	t.Run("LockExpiry", func(t *testing.T) { pretest(); testStoreLockExpiry(t, s) })
	t.Run("Games", func(t *testing.T) { pretest(); testStoreGames(t, s) })
	t.Run("GameStatus", func(t *testing.T) { pretest(); testStoreGameStatus(t, s) })
	t.Run("GameFrames", func(t *testing.T) { pretest(); testStoreGameFrames(t, s) })
	t.Run("FrameSequence", func(t *testing.T) { pretest(); testStoreFrameSequence(t, s) })
	t.Run("ConcurrentWriters", func(t *testing.T) { pretest(); testStoreConcurrentWriters(t, s) })
}
