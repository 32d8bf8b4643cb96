package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/battlesnakeio/classic/input"
	"github.com/battlesnakeio/classic/render"
	"github.com/battlesnakeio/classic/rules"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "plays a local game, one line of input per turn",
	Long: "plays a local game without a server. Each line read from stdin is one " +
		"turn: an input name (up, w, k, ...) or an empty line to keep going.",
	Args: loadConfigFile,
	Run: func(*cobra.Command, []string) {
		s, err := rules.NewSession(*cfg)
		if err == nil {
			err = play(s, os.Stdin, os.Stdout)
		}
		if err != nil {
			fmt.Println(err)
		}
	},
}

// play ticks the session once per input line until the game ends or the
// input runs out.
func play(s *rules.Session, in io.Reader, out io.Writer) error {
	board := s.Game().Board()
	fmt.Fprint(out, render.Frame(board, s.Snapshot()))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		outcome, err := s.Advance(input.DefaultKeymap.Lookup(scanner.Text()))
		fmt.Fprint(out, render.Frame(board, s.Snapshot()))
		if errors.Cause(err) == rules.ErrBoardFull {
			fmt.Fprintln(out, "you win")
			return nil
		}
		if err != nil {
			return err
		}
		if outcome.Result == rules.MoveDied {
			fmt.Fprintf(out, "game over: %s\n", outcome.Cause)
			return nil
		}
	}
	return scanner.Err()
}

func init() {
	playCmd.Flags().AddFlagSet(createCmd.Flags())
}
