package commands

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/battlesnakeio/classic/api"
	"github.com/battlesnakeio/classic/rules"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "creates a new game on the api",
	Args:  loadConfigFile,
	Run: func(*cobra.Command, []string) {
		cr, err := createGame()
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf(`{"ID": "%s"}`+"\n", cr.ID)
	},
}

func loadConfigFile(*cobra.Command, []string) error {
	if configFile == "" {
		return nil
	}
	data, err := ioutil.ReadFile(configFile) // nolint: gosec
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func createGame() (*api.CreateResponse, error) {
	cr := &api.CreateResponse{}
	if err := postJSON("/games", cfg, cr); err != nil {
		return nil, err
	}
	return cr, nil
}

var (
	configFile string
	cfg        = &rules.Config{}
)

func init() {
	createCmd.Flags().StringVarP(&configFile, "config", "c", "", "location of a game config file, overrides the other flags")
	createCmd.Flags().Int32Var(&cfg.Width, "width", 20, "board width")
	createCmd.Flags().Int32Var(&cfg.Height, "height", 20, "board height")
	createCmd.Flags().Int64Var(&cfg.Seed, "seed", time.Now().UnixNano(), "food placement seed")
}
