package rules

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCreateInitialGame(t *testing.T) {
	game, frame, err := CreateInitialGame(Config{
		Width:  16,
		Height: 16,
		Seed:   100,
	})
	require.NoError(t, err)
	require.NotEmpty(t, game.ID)
	require.Equal(t, GameStatusRunning, game.Status)
	require.Equal(t, Board{Width: 16, Height: 16}, game.Board())
	require.Equal(t, int64(100), game.Seed)

	require.Equal(t, int64(0), frame.Turn)
	require.Equal(t, Point{X: 8, Y: 8}, frame.Head)
	require.Empty(t, frame.Body)
	require.Equal(t, DirectionNone, frame.Heading)
	require.True(t, frame.Alive())
	require.NotNil(t, frame.Food)
	require.True(t, game.Board().Contains(*frame.Food))
	require.False(t, frame.Food.Equal(frame.Head))
}

func TestCreateInitialGameStart(t *testing.T) {
	_, frame, err := CreateInitialGame(Config{
		Width:  4,
		Height: 4,
		Start:  &Point{X: 0, Y: 3},
	})
	require.NoError(t, err)
	require.Equal(t, Point{X: 0, Y: 3}, frame.Head)
}

func TestCreateInitialGameSameSeedSameFood(t *testing.T) {
	cfg := Config{Width: 10, Height: 7, Seed: 9}
	g1, f1, err := CreateInitialGame(cfg)
	require.NoError(t, err)
	g2, f2, err := CreateInitialGame(cfg)
	require.NoError(t, err)

	require.NotEqual(t, g1.ID, g2.ID)
	require.Equal(t, f1, f2)
}

func TestCreateInitialGameInvalidConfig(t *testing.T) {
	tests := []struct {
		Name   string
		Config Config
	}{
		{Name: "narrow", Config: Config{Width: 2, Height: 10}},
		{Name: "short", Config: Config{Width: 10, Height: 2}},
		{Name: "empty", Config: Config{}},
		{Name: "negative", Config: Config{Width: -4, Height: 4}},
		{Name: "start left", Config: Config{Width: 4, Height: 4, Start: &Point{X: -1, Y: 0}}},
		{Name: "start below", Config: Config{Width: 4, Height: 4, Start: &Point{X: 0, Y: 4}}},
	}
	for _, test := range tests {
		game, frame, err := CreateInitialGame(test.Config)
		require.Error(t, err, test.Name)
		require.Equal(t, ErrConfiguration, errors.Cause(err), test.Name)
		require.Nil(t, game, test.Name)
		require.Nil(t, frame, test.Name)
	}
}

func TestCreateInitialGameSmallestBoard(t *testing.T) {
	game, frame, err := CreateInitialGame(Config{Width: 3, Height: 3, Seed: 1})
	require.NoError(t, err)
	require.Equal(t, Point{X: 1, Y: 1}, frame.Head)
	require.True(t, game.Board().Contains(*frame.Food))
	require.False(t, frame.Food.Equal(frame.Head))
}
