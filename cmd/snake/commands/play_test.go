package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/battlesnakeio/classic/rules"
	"github.com/stretchr/testify/require"
)

func newPlaySession(t *testing.T, cfg rules.Config) *rules.Session {
	s, err := rules.NewSession(cfg)
	require.NoError(t, err)
	return s
}

// nearlyFull leaves a single free cell on a 3x3 board, holding the food.
func nearlyFull(*testing.T) *rules.Session {
	game := &rules.Game{ID: "full", Width: 3, Height: 3, Status: rules.GameStatusRunning}
	return rules.ResumeSession(game, &rules.Frame{
		Turn:    7,
		Head:    rules.Point{X: 1, Y: 2},
		Heading: rules.DirectionRight,
		Food:    &rules.Point{X: 2, Y: 2},
		Body: []rules.Point{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
			{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 2},
		},
	})
}

func TestPlay(t *testing.T) {
	tests := []struct {
		name        string
		session     func(t *testing.T) *rules.Session
		input       string
		wantRenders int
		wantLast    string
		wantTurn    int64
		wantAlive   bool
	}{
		{
			name: "wall ends the game and stops reading",
			session: func(t *testing.T) *rules.Session {
				return newPlaySession(t, rules.Config{Width: 3, Height: 3, Start: &rules.Point{X: 0, Y: 1}, Seed: 1})
			},
			input:       "a\nw\nw\n",
			wantRenders: 2,
			wantLast:    "game over: " + rules.DeathCauseWallCollision,
			wantTurn:    1,
		},
		{
			name: "unknown input before the first move does nothing",
			session: func(t *testing.T) *rules.Session {
				return newPlaySession(t, rules.Config{Width: 5, Height: 5, Seed: 2})
			},
			input:       "x\nquit\n",
			wantRenders: 3,
			wantTurn:    0,
			wantAlive:   true,
		},
		{
			name: "empty lines keep the heading",
			session: func(t *testing.T) *rules.Session {
				return newPlaySession(t, rules.Config{Width: 6, Height: 6, Start: &rules.Point{X: 1, Y: 1}, Seed: 3})
			},
			input:       "d\n\n\n",
			wantRenders: 4,
			wantTurn:    3,
			wantAlive:   true,
		},
		{
			name:        "filling the board wins",
			session:     nearlyFull,
			input:       "right\nleft\n",
			wantRenders: 2,
			wantLast:    "you win",
			wantTurn:    8,
			wantAlive:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.session(t)
			out := &bytes.Buffer{}

			require.NoError(t, play(s, strings.NewReader(tc.input), out))

			require.Equal(t, tc.wantRenders, strings.Count(out.String(), "┌"))
			if tc.wantLast != "" {
				lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
				require.Equal(t, tc.wantLast, lines[len(lines)-1])
			}
			snap := s.Snapshot()
			require.Equal(t, tc.wantTurn, snap.Turn)
			require.Equal(t, tc.wantAlive, snap.Alive())
		})
	}
}

func TestPlayEmptyLinesKeepHeading(t *testing.T) {
	s := newPlaySession(t, rules.Config{Width: 6, Height: 6, Start: &rules.Point{X: 1, Y: 1}, Seed: 3})

	require.NoError(t, play(s, strings.NewReader("d\n\n\n"), &bytes.Buffer{}))
	snap := s.Snapshot()
	require.Equal(t, rules.Point{X: 4, Y: 1}, snap.Head)
	require.Equal(t, rules.DirectionRight, snap.Heading)
}
