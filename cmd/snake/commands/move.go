package commands

import (
	"fmt"

	"github.com/battlesnakeio/classic/api"
	"github.com/battlesnakeio/classic/render"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move [direction]",
	Short: "plays one move of a game on the api",
	Long: "plays one move of a game on the api. The direction is any input name " +
		"(up, w, k, arrowup, ...); leave it out to keep the current heading.",
	Args: func(c *cobra.Command, args []string) error {
		if err := requireGameID(c, args); err != nil {
			return err
		}
		return cobra.MaximumNArgs(1)(c, args)
	},
	Run: func(c *cobra.Command, args []string) {
		move := ""
		if len(args) > 0 {
			move = args[0]
		}

		mr := &api.MoveResponse{}
		if err := postJSON(fmt.Sprintf("/games/%s/move", gameID), &api.MoveRequest{Move: move}, mr); err != nil {
			fmt.Println(err)
			return
		}
		sr, err := getStatus(gameID)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Print(render.Frame(sr.Game.Board(), mr.Frame))
		fmt.Printf("%s\n", mr.Outcome.Result)
	},
}

func init() {
	moveCmd.Flags().StringVarP(&gameID, "game-id", "g", "", "the game id of the game to move")
}
