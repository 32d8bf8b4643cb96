package controller

import (
	"context"
	"sync"
	"time"

	"github.com/battlesnakeio/classic/rules"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

var (
	// LockExpiry is the time after which a lock will expire.
	LockExpiry = 1 * time.Second
	// ErrNotFound is thrown when a game is not found.
	ErrNotFound = errors.New("controller: game not found")
	// ErrIsLocked is returned when a game is locked.
	ErrIsLocked = errors.New("controller: game is locked")
	// ErrInvalidSequence is returned when a frame does not follow the last
	// stored turn.
	ErrInvalidSequence = errors.New("controller: invalid frame sequence")
)

// Store is the interface to the backend store.
type Store interface {
	// Lock will lock a specific game, returning a token that must be used to
	// unlock it. Locking again with the same token extends the lock.
	Lock(ctx context.Context, key, token string) (string, error)
	// Unlock will unlock a game if it is locked and the token used to lock it
	// is correct.
	Unlock(ctx context.Context, key, token string) error
	// CreateGame will insert a game with its initial frames.
	CreateGame(context.Context, *rules.Game, []*rules.Frame) error
	// SetGameStatus is used to set a specific game status.
	SetGameStatus(c context.Context, id string, status rules.GameStatus) error
	// PushGameFrame will push a game frame onto the list of frames. Turns
	// must be contiguous starting at 0.
	PushGameFrame(c context.Context, id string, f *rules.Frame) error
	// ListGameFrames will list frames by an offset and limit, it supports
	// negative offset.
	ListGameFrames(c context.Context, id string, limit, offset int) ([]*rules.Frame, error)
	// GetGame will fetch the game.
	GetGame(context.Context, string) (*rules.Game, error)
}

// InMemStore returns an in memory implementation of the Store interface.
func InMemStore() Store {
	return &inmem{
		games:  map[string]*rules.Game{},
		frames: map[string][]*rules.Frame{},
		locks:  map[string]*lock{},
	}
}

type lock struct {
	token   string
	expires time.Time
}

type inmem struct {
	games  map[string]*rules.Game
	frames map[string][]*rules.Frame
	locks  map[string]*lock
	lock   sync.Mutex
}

func (in *inmem) Lock(ctx context.Context, key, token string) (string, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	now := time.Now()
	l, ok := in.locks[key]
	if ok {
		if l.expires.Before(now) {
			delete(in.locks, key)
		} else if l.token == token {
			l.expires = now.Add(LockExpiry)
			return l.token, nil
		} else {
			return "", ErrIsLocked
		}
	}
	if token == "" {
		token = uuid.NewV4().String()
	}
	in.locks[key] = &lock{
		token:   token,
		expires: now.Add(LockExpiry),
	}
	return token, nil
}

func (in *inmem) Unlock(ctx context.Context, key, token string) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	l, ok := in.locks[key]
	if !ok {
		return nil
	}
	if l.token == token || l.expires.Before(time.Now()) {
		delete(in.locks, key)
		return nil
	}
	return ErrIsLocked
}

func (in *inmem) CreateGame(ctx context.Context, g *rules.Game, frames []*rules.Frame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	clone := *g
	in.games[g.ID] = &clone
	in.frames[g.ID] = nil
	for _, f := range frames {
		if err := in.appendFrame(g.ID, f); err != nil {
			return err
		}
	}
	return nil
}

func (in *inmem) SetGameStatus(ctx context.Context, id string, status rules.GameStatus) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	g, ok := in.games[id]
	if !ok {
		return ErrNotFound
	}
	g.Status = status
	return nil
}

func (in *inmem) PushGameFrame(ctx context.Context, id string, f *rules.Frame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[id]; !ok {
		return ErrNotFound
	}
	return in.appendFrame(id, f)
}

func (in *inmem) appendFrame(id string, f *rules.Frame) error {
	if f.Turn != int64(len(in.frames[id])) {
		return ErrInvalidSequence
	}
	in.frames[id] = append(in.frames[id], f.Clone())
	return nil
}

func (in *inmem) ListGameFrames(ctx context.Context, id string, limit, offset int) ([]*rules.Frame, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[id]; !ok {
		return nil, ErrNotFound
	}
	page := PageFrames(in.frames[id], limit, offset)
	frames := make([]*rules.Frame, 0, len(page))
	for _, f := range page {
		frames = append(frames, f.Clone())
	}
	return frames, nil
}

func (in *inmem) GetGame(ctx context.Context, id string) (*rules.Game, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if g, ok := in.games[id]; ok {
		clone := *g
		return &clone, nil
	}
	return nil, ErrNotFound
}

// PageFrames applies limit and offset to an ordered list of frames. A
// negative offset counts back from the end, so -1 is the last frame.
func PageFrames(frames []*rules.Frame, limit, offset int) []*rules.Frame {
	if offset < 0 {
		offset = len(frames) + offset
		if offset < 0 {
			offset = 0
		}
	}
	if len(frames) == 0 || offset >= len(frames) || limit <= 0 {
		return nil
	}
	if offset+limit >= len(frames) {
		limit = len(frames) - offset
	}
	return frames[offset : offset+limit]
}
