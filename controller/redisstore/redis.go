// Package redisstore keeps games in redis. Games are stored as JSON strings,
// frames as a list per game and locks as expiring keys.
package redisstore

import (
	"context"
	"encoding/json"

	"github.com/battlesnakeio/classic/controller"
	"github.com/battlesnakeio/classic/rules"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// Store is a controller.Store backed by redis.
type Store struct {
	client *redis.Client
}

// NewStore will create a new instance of an underlying redis client, so it should not be re-created across "threads"
// - connectURL see: github.com/go-redis/redis/options.go for URL specifics
// The underlying redis client will be immediately tested for connectivity, so don't call this until you know redis can connect.
// Returns a new instance OR an error if unable (meaning an issue connecting to your redis URL)
func NewStore(connectURL string) (*Store, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)

	// Validate it's connected
	err = client.Ping().Err()
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	return &Store{client: client}, nil
}

// Close closes the underlying redis client.
func (rs *Store) Close() error {
	return rs.client.Close()
}

func gameKey(id string) string   { return "classic:game:" + id }
func framesKey(id string) string { return "classic:frames:" + id }
func lockKey(id string) string   { return "classic:lock:" + id }

// Lock will lock a specific game, returning a token that must be used to
// write frames to the game.
func (rs *Store) Lock(ctx context.Context, key, token string) (string, error) {
	if token == "" {
		token = uuid.NewV4().String()
	}
	// A lock that expires immediately never needs storing.
	if controller.LockExpiry <= 0 {
		return token, nil
	}

	k := lockKey(key)
	err := rs.client.Watch(func(tx *redis.Tx) error {
		current, err := tx.Get(k).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		if err == nil && current != token {
			return controller.ErrIsLocked
		}
		_, err = tx.Pipelined(func(pipe redis.Pipeliner) error {
			pipe.Set(k, token, controller.LockExpiry)
			return nil
		})
		return err
	}, k)
	if err == redis.TxFailedErr {
		return "", controller.ErrIsLocked
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Unlock will unlock a game if it is locked and the token used to lock it
// is correct.
func (rs *Store) Unlock(ctx context.Context, key, token string) error {
	k := lockKey(key)
	err := rs.client.Watch(func(tx *redis.Tx) error {
		current, err := tx.Get(k).Result()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return err
		}
		if current != token {
			return controller.ErrIsLocked
		}
		_, err = tx.Pipelined(func(pipe redis.Pipeliner) error {
			pipe.Del(k)
			return nil
		})
		return err
	}, k)
	if err == redis.TxFailedErr {
		return controller.ErrIsLocked
	}
	return err
}

// CreateGame will insert a game with the default game frames.
func (rs *Store) CreateGame(ctx context.Context, g *rules.Game, frames []*rules.Frame) error {
	game, err := json.Marshal(g)
	if err != nil {
		return errors.Wrap(err, "unable to encode game")
	}
	values := make([]interface{}, 0, len(frames))
	for i, f := range frames {
		if f.Turn != int64(i) {
			return controller.ErrInvalidSequence
		}
		b, err := json.Marshal(f)
		if err != nil {
			return errors.Wrap(err, "unable to encode frame")
		}
		values = append(values, b)
	}

	_, err = rs.client.TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.Set(gameKey(g.ID), game, 0)
		pipe.Del(framesKey(g.ID))
		if len(values) > 0 {
			pipe.RPush(framesKey(g.ID), values...)
		}
		return nil
	})
	return err
}

// SetGameStatus is used to set a specific game status. This operation
// should be atomic.
func (rs *Store) SetGameStatus(ctx context.Context, id string, status rules.GameStatus) error {
	k := gameKey(id)
	return rs.client.Watch(func(tx *redis.Tx) error {
		g, err := getGame(tx, id)
		if err != nil {
			return err
		}
		g.Status = status
		b, err := json.Marshal(g)
		if err != nil {
			return errors.Wrap(err, "unable to encode game")
		}
		_, err = tx.Pipelined(func(pipe redis.Pipeliner) error {
			pipe.Set(k, b, 0)
			return nil
		})
		return err
	}, k)
}

// PushGameFrame will push a game frame onto the list of frames.
func (rs *Store) PushGameFrame(ctx context.Context, id string, f *rules.Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return errors.Wrap(err, "unable to encode frame")
	}

	err = rs.client.Watch(func(tx *redis.Tx) error {
		exists, err := tx.Exists(gameKey(id)).Result()
		if err != nil {
			return err
		}
		if exists == 0 {
			return controller.ErrNotFound
		}
		n, err := tx.LLen(framesKey(id)).Result()
		if err != nil {
			return err
		}
		if f.Turn != n {
			return controller.ErrInvalidSequence
		}
		_, err = tx.Pipelined(func(pipe redis.Pipeliner) error {
			pipe.RPush(framesKey(id), b)
			return nil
		})
		return err
	}, gameKey(id), framesKey(id))
	if err == redis.TxFailedErr {
		// Another writer pushed this turn first.
		return controller.ErrInvalidSequence
	}
	return err
}

// ListGameFrames will list frames by an offset and limit, it supports
// negative offset.
func (rs *Store) ListGameFrames(ctx context.Context, id string, limit, offset int) ([]*rules.Frame, error) {
	exists, err := rs.client.Exists(gameKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, controller.ErrNotFound
	}

	n, err := rs.client.LLen(framesKey(id)).Result()
	if err != nil {
		return nil, err
	}
	start := int64(offset)
	if start < 0 {
		start = n + start
		if start < 0 {
			start = 0
		}
	}
	if limit <= 0 || start >= n {
		return nil, nil
	}

	values, err := rs.client.LRange(framesKey(id), start, start+int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}
	frames := make([]*rules.Frame, 0, len(values))
	for _, v := range values {
		f := &rules.Frame{}
		if err := json.Unmarshal([]byte(v), f); err != nil {
			return nil, errors.Wrapf(err, "unable to decode frame of game %s", id)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// GetGame will fetch the game.
func (rs *Store) GetGame(ctx context.Context, id string) (*rules.Game, error) {
	return getGame(rs.client, id)
}

type getter interface {
	Get(key string) *redis.StringCmd
}

func getGame(c getter, id string) (*rules.Game, error) {
	b, err := c.Get(gameKey(id)).Bytes()
	if err == redis.Nil {
		return nil, controller.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	g := &rules.Game{}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, errors.Wrapf(err, "unable to decode game %s", id)
	}
	return g, nil
}
