// Command lobbylinks drives the lobbying-disclosure link pipeline from
// the terminal: fetching filings, canonicalizing client names,
// resolving legislator mentions and writing the edge graph.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lobbylinks/lobbylinks/internal/app"
)

var (
	configPath string
	cfg        app.Config
	logger     *log.Logger
)

var rootCmd = &cobra.Command{
	Use:           "lobbylinks",
	Short:         "Build client-to-legislator link graphs from LDA filings",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = app.LoadConfig(configPath)
		if err != nil {
			return err
		}
		l, closer := app.NewLogger(cfg.Log)
		logger = l
		cobra.OnFinalize(func() { closer.Close() })
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./lobbylinks.yaml)")
	rootCmd.AddCommand(fetchCmd, buildCmd, reduceCmd, issuesCmd, matchCmd, rosterCmd)
	if err := rootCmd.Execute(); err != nil {
		log.New(os.Stderr, "", 0).Printf("lobbylinks: %v", err)
		os.Exit(1)
	}
}
