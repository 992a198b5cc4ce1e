// Package cli implements journalctl, the operator command line for the trading journal.
package cli

import (
	"fmt"

	"trading-journal-go/internal/client"
	"trading-journal-go/internal/config"
	"trading-journal-go/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	configDir string
	baseURL   string

	cfg config.Config
	log *zap.Logger
}

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "journalctl",
		Short: "Operate a trading journal server",
		Long: `journalctl talks to a running journal server and to its database.

It provides tools for:
  - Printing performance statistics for a date range
  - Listing recent or filtered trades
  - Exporting trades as CSV or Org-mode entries
  - Rebuilding method statistics from the trade log
  - Generating a default configuration file`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	root.PersistentFlags().StringVarP(&a.configDir, "config", "c", "./configs", "directory containing config.yml")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "journal API base URL (overrides client.base_url)")

	root.AddCommand(
		newStatsCmd(a),
		newTradesCmd(a),
		newExportCmd(a),
		newRecomputeCmd(a),
		newConfigCmd(),
	)
	return root
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.baseURL != "" {
		cfg.Client.BaseURL = a.baseURL
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.cfg = cfg
	a.log = log.Named("journalctl")
	return nil
}

func (a *app) client() *client.RestClient {
	return client.NewRestClient(a.cfg.Client, a.log)
}
