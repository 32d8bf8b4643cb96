package filestore

import (
	"encoding/json"
	"os"

	"github.com/battlesnakeio/classic/rules"
	"github.com/pkg/errors"
)

var openFileWriter = appendOnlyFileWriter

type writer interface {
	WriteString(s string) (int, error)
	Close() error
}

func writeLine(w writer, data interface{}) error {
	j, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = w.WriteString(string(j) + "\n")
	return err
}

func writeFrame(w writer, f *rules.Frame) error {
	return writeLine(w, f)
}

func writeGameInfo(w writer, game *rules.Game) error {
	return writeLine(w, game)
}

func appendOnlyFileWriter(directory, id string, mustCreate bool) (writer, error) {
	if err := os.MkdirAll(directory, 0775); err != nil {
		return nil, errors.Wrap(err, "unable to create save directory")
	}

	flags := os.O_APPEND | os.O_WRONLY | os.O_CREATE
	if mustCreate {
		flags |= os.O_EXCL
	}
	return os.OpenFile(getFilePath(directory, id), flags, 0644)
}
