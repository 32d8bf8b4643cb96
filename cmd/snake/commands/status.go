package commands

import (
	"fmt"

	"github.com/battlesnakeio/classic/api"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "gets the status of a game from the api",
	Args:  requireGameID,
	Run: func(*cobra.Command, []string) {
		sr, err := getStatus(gameID)
		if err != nil {
			fmt.Println(err)
			return
		}
		spew.Dump(sr)
	},
}

func init() {
	statusCmd.Flags().StringVarP(&gameID, "game-id", "g", "", "the game id of the game to get the status of")
}

func requireGameID(*cobra.Command, []string) error {
	if len(gameID) == 0 {
		return errors.New("game id is required")
	}
	return nil
}

func getStatus(id string) (*api.StatusResponse, error) {
	sr := &api.StatusResponse{}
	if err := getJSON(fmt.Sprintf("/games/%s", id), sr); err != nil {
		return nil, err
	}
	return sr, nil
}
