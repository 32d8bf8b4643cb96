package commands

import (
	"fmt"
	"os"

	"github.com/battlesnakeio/classic/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "snake",
	Short:   "snake runs and plays classic snake games",
	Version: version.Version,
	PreRun: func(c *cobra.Command, args []string) {
		serverCmd.PreRun(c, args)
	},
	Run: func(c *cobra.Command, args []string) {
		serverCmd.Run(c, args)
	},
}

var (
	apiAddr string
	gameID  string
)

// Execute runs the root command
func Execute() {
	rootCmd.PersistentFlags().StringVar(&apiAddr, "api-addr", "http://localhost:3005", "address of the api server")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serverCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
