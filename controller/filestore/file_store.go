package filestore

import (
	"context"
	"os/user"
	"path"
	"sync"
	"time"

	"github.com/battlesnakeio/classic/controller"
	"github.com/battlesnakeio/classic/rules"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

func defaultDir() string {
	return path.Join(homeDir(), ".battlesnake/classic")
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// NewFileStore returns a file based store implementation (1 file per game).
// An empty directory means ~/.battlesnake/classic.
func NewFileStore(directory string) controller.Store {
	if directory == "" {
		directory = defaultDir()
	}

	return &fileStore{
		games:     map[string]*rules.Game{},
		frames:    map[string][]*rules.Frame{},
		writers:   map[string]writer{},
		locks:     map[string]*lock{},
		directory: directory,
	}
}

type lock struct {
	token   string
	expires time.Time
}

type fileStore struct {
	games     map[string]*rules.Game
	frames    map[string][]*rules.Frame
	writers   map[string]writer
	locks     map[string]*lock
	lock      sync.Mutex
	directory string
}

// closeGame closes the handle to the game's file. Should be called when the
// game is complete.
func (fs *fileStore) closeGame(id string) {
	if w, ok := fs.writers[id]; ok {
		err := w.Close()
		if err != nil {
			log.WithError(err).WithField("game", id).Error("Error while closing file writer")
		}
	}
	delete(fs.writers, id)
}

func (fs *fileStore) Lock(ctx context.Context, key, token string) (string, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	now := time.Now()

	l, ok := fs.locks[key]
	if ok {
		// We have a lock token, if it's expired just delete it and continue as
		// if nothing happened.
		if l.expires.Before(now) {
			delete(fs.locks, key)
		} else {
			// If the token is not expired and matched our active token, let's
			// just bump the expiration.
			if l.token == token {
				l.expires = time.Now().Add(controller.LockExpiry)
				return l.token, nil
			}
			// If it's not our token, we should throw an error.
			return "", controller.ErrIsLocked
		}
	}
	if token == "" {
		token = uuid.NewV4().String()
	}
	// Lock was expired or non-existant, create a new token.
	l = &lock{
		token:   token,
		expires: now.Add(controller.LockExpiry),
	}
	fs.locks[key] = l
	return l.token, nil
}

func (fs *fileStore) Unlock(ctx context.Context, key, token string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	now := time.Now()

	l, ok := fs.locks[key]
	// No lock? Don't care.
	if !ok {
		return nil
	}
	if l.expires.Before(now) || l.token == token {
		delete(fs.locks, key)
		return nil
	}
	return controller.ErrIsLocked
}

func (fs *fileStore) CreateGame(ctx context.Context, g *rules.Game, frames []*rules.Frame) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	handle, err := openFileWriter(fs.directory, g.ID, true)
	if err != nil {
		return errors.Wrapf(err, "unable to create archive for game %s", g.ID)
	}
	fs.writers[g.ID] = handle

	if err := writeGameInfo(handle, g); err != nil {
		fs.closeGame(g.ID)
		return err
	}

	clone := *g
	fs.games[g.ID] = &clone
	fs.frames[g.ID] = []*rules.Frame{}
	for _, f := range frames {
		if err := fs.appendFrame(g.ID, f); err != nil {
			return err
		}
	}
	return nil
}

func (fs *fileStore) SetGameStatus(ctx context.Context, id string, status rules.GameStatus) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	game, err := fs.requireGame(id)
	if err != nil {
		return err
	}

	game.Status = status
	if status != rules.GameStatusRunning {
		fs.closeGame(id)
	}
	return nil
}

func (fs *fileStore) PushGameFrame(ctx context.Context, id string, f *rules.Frame) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, err := fs.requireGame(id); err != nil {
		return err
	}
	return fs.appendFrame(id, f)
}

func (fs *fileStore) ListGameFrames(ctx context.Context, id string, limit, offset int) ([]*rules.Frame, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, err := fs.requireGame(id); err != nil {
		return nil, err
	}

	page := controller.PageFrames(fs.frames[id], limit, offset)
	frames := make([]*rules.Frame, 0, len(page))
	for _, f := range page {
		frames = append(frames, f.Clone())
	}
	return frames, nil
}

func (fs *fileStore) GetGame(ctx context.Context, id string) (*rules.Game, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	g, err := fs.requireGame(id)
	if err != nil {
		return nil, err
	}

	// Clone the game, since this could be modified after this is returned
	// and upset internal state inside the store.
	clone := *g
	return &clone, nil
}

func (fs *fileStore) requireHandle(id string) (writer, error) {
	if w, ok := fs.writers[id]; ok {
		return w, nil
	}

	handle, err := openFileWriter(fs.directory, id, false)
	if err != nil {
		return nil, err
	}

	fs.writers[id] = handle
	return handle, nil
}

// requireGame loads the game and its frames from the archive on first use.
func (fs *fileStore) requireGame(id string) (*rules.Game, error) {
	// Do nothing if game already loaded.
	if g, ok := fs.games[id]; ok {
		return g, nil
	}

	g, frames, err := ReadGame(fs.directory, id)
	if err != nil {
		return nil, err
	}

	fs.games[id] = g
	fs.frames[id] = frames
	return g, nil
}

func (fs *fileStore) appendFrame(id string, f *rules.Frame) error {
	if f.Turn != int64(len(fs.frames[id])) {
		return controller.ErrInvalidSequence
	}

	handle, err := fs.requireHandle(id)
	if err != nil {
		return err
	}

	// Add frame to archive file
	if err := writeFrame(handle, f); err != nil {
		return err
	}

	// Add frame to in-memory cache
	fs.frames[id] = append(fs.frames[id], f.Clone())
	return nil
}

func getFilePath(directory string, id string) string {
	return path.Join(directory, id) + ".snk"
}
