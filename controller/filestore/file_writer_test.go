package filestore

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/battlesnakeio/classic/rules"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	text   string
	err    error
	closed bool
}

func (w *mockWriter) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}

	w.text += s
	return len(s), nil
}

func (w *mockWriter) Close() error {
	w.closed = true
	return nil
}

func basicGame() *rules.Game {
	return &rules.Game{
		ID:     "myid",
		Width:  10,
		Height: 15,
		Seed:   3,
		Status: rules.GameStatusRunning,
	}
}

func basicFrames() []*rules.Frame {
	return []*rules.Frame{
		{
			Turn: 0,
			Head: rules.Point{X: 5, Y: 7},
			Body: []rules.Point{},
			Food: &rules.Point{X: 1, Y: 1},
		},
		{
			Turn:    1,
			Head:    rules.Point{X: 5, Y: 6},
			Body:    []rules.Point{},
			Heading: rules.DirectionUp,
			Food:    &rules.Point{X: 1, Y: 1},
		},
	}
}

func deadFrame() *rules.Frame {
	return &rules.Frame{
		Turn:    2,
		Head:    rules.Point{X: 5, Y: -1},
		Body:    []rules.Point{{X: 5, Y: 1}},
		Heading: rules.DirectionUp,
		Food:    &rules.Point{X: 1, Y: 1},
		Death:   &rules.Death{Turn: 2, Cause: rules.DeathCauseWallCollision},
	}
}

func TestWriteGameInfo(t *testing.T) {
	w := &mockWriter{}
	err := writeGameInfo(w, basicGame())
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(w.text, "\n"))

	info := &rules.Game{}
	require.NoError(t, json.Unmarshal([]byte(w.text), info))
	require.Equal(t, basicGame(), info)
}

func TestWriteGameInfoError(t *testing.T) {
	w := &mockWriter{
		err: errors.New("fail"),
	}
	err := writeGameInfo(w, basicGame())
	require.NotNil(t, err)
}

func TestWriteFrame(t *testing.T) {
	w := &mockWriter{}
	err := writeFrame(w, basicFrames()[1])
	require.NoError(t, err)

	f := &rules.Frame{}
	require.NoError(t, json.Unmarshal([]byte(w.text), f))
	require.Equal(t, basicFrames()[1], f)
	require.Contains(t, w.text, `"heading":"up"`)
}

func TestWriteFrameDeadSnake(t *testing.T) {
	w := &mockWriter{}
	err := writeFrame(w, deadFrame())
	require.NoError(t, err)

	f := &rules.Frame{}
	require.NoError(t, json.Unmarshal([]byte(w.text), f))
	require.NotNil(t, f.Death)
	require.Equal(t, rules.DeathCauseWallCollision, f.Death.Cause)
	require.Equal(t, int64(2), f.Death.Turn)
}

func TestWriteFrameError(t *testing.T) {
	w := &mockWriter{
		err: errors.New("fail"),
	}
	err := writeFrame(w, basicFrames()[0])
	require.NotNil(t, err)
}
