package filestore

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/battlesnakeio/classic/controller"
	"github.com/battlesnakeio/classic/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var openFileReader = bufferedFileReader

var errCorruptLine = errors.New("filestore: corrupt line")

type reader interface {
	ReadBytes(delim byte) ([]byte, error)
	Close() error
}

type bufferedFile struct {
	*bufio.Reader
	file *os.File
}

func (b *bufferedFile) Close() error {
	return b.file.Close()
}

func bufferedFileReader(directory, id string) (reader, error) {
	f, err := os.Open(getFilePath(directory, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, controller.ErrNotFound
		}
		return nil, err
	}
	return &bufferedFile{Reader: bufio.NewReader(f), file: f}, nil
}

// readLine decodes the next line into out and reports whether more lines
// may follow.
func readLine(r reader, out interface{}) (bool, error) {
	bytes, err := r.ReadBytes('\n')
	eof := err == io.EOF

	if err != nil && !eof {
		return false, err
	}

	if err = json.Unmarshal(bytes, out); err != nil {
		return !eof, errCorruptLine
	}

	return !eof, nil
}

// ReadGame loads an archived game and all of its readable frames. Lines that
// cannot be decoded are skipped. A game whose last frame is over is reported
// as complete.
func ReadGame(directory, id string) (*rules.Game, []*rules.Frame, error) {
	r, err := openFileReader(directory, id)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	game := &rules.Game{}
	more, err := readLine(r, game)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to read header of game %s", id)
	}

	frames := []*rules.Frame{}
	for more {
		f := &rules.Frame{}
		more, err = readLine(r, f)
		if err == errCorruptLine {
			continue
		}
		if err != nil {
			return nil, nil, errors.Wrapf(err, "unable to read frames of game %s", id)
		}
		if f.Turn != int64(len(frames)) {
			log.WithFields(log.Fields{
				"game": id,
				"turn": f.Turn,
			}).Warn("skipping out of sequence frame")
			continue
		}
		frames = append(frames, f)
	}

	if n := len(frames); n > 0 && rules.CheckForGameOver(frames[n-1]) {
		game.Status = rules.GameStatusComplete
	}
	return game, frames, nil
}
