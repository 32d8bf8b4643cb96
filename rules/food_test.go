package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceFoodAvoidsSnake(t *testing.T) {
	board := Board{Width: 4, Height: 4}
	frame := &Frame{
		Head: Point{X: 1, Y: 1},
		Body: []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}},
	}
	for seed := int64(0); seed < 200; seed++ {
		p, err := placeFood(board, frame, foodSource(seed, 1))
		require.NoError(t, err)
		require.True(t, board.Contains(p))
		for _, o := range frame.Occupied() {
			require.False(t, o.Equal(p), "seed %d placed food on %s", seed, p)
		}
	}
}

func TestPlaceFoodLastFreeCell(t *testing.T) {
	board := Board{Width: 3, Height: 3}
	frame := &Frame{
		Head: Point{X: 0, Y: 0},
		Body: []Point{
			{X: 2, Y: 2}, {X: 1, Y: 2}, {X: 0, Y: 2},
			{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
			{X: 2, Y: 0},
		},
	}
	for seed := int64(0); seed < 20; seed++ {
		p, err := placeFood(board, frame, foodSource(seed, 5))
		require.NoError(t, err)
		require.Equal(t, Point{X: 1, Y: 0}, p)
	}
}

func TestPlaceFoodBoardFull(t *testing.T) {
	board := Board{Width: 3, Height: 3}
	frame := &Frame{
		Head: Point{X: 1, Y: 0},
		Body: []Point{
			{X: 2, Y: 2}, {X: 1, Y: 2}, {X: 0, Y: 2},
			{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
			{X: 2, Y: 0}, {X: 0, Y: 0},
		},
	}
	_, err := placeFood(board, frame, foodSource(1, 9))
	require.Equal(t, ErrBoardFull, err)
}

func TestFoodSourceIsReproducible(t *testing.T) {
	a := foodSource(7, 12)
	b := foodSource(7, 12)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Int63(), b.Int63())
	}
	require.NotEqual(t, foodSource(7, 12).Int63(), foodSource(7, 13).Int63())
}

func TestGetUnoccupiedPoints(t *testing.T) {
	board := Board{Width: 3, Height: 3}
	occupied := map[Point]struct{}{
		{X: 0, Y: 0}: {},
		{X: 1, Y: 1}: {},
	}
	open := getUnoccupiedPoints(board, occupied)
	require.Len(t, open, 7)
	for _, p := range open {
		_, taken := occupied[p]
		require.False(t, taken)
	}
}
