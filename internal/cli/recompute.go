package cli

import (
	"fmt"

	"trading-journal-go/internal/database"
	"trading-journal-go/internal/journal"
	"trading-journal-go/internal/repository/gormstore"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newRecomputeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recompute",
		Short: "Rebuild method statistics from the trade log",
		Long: `Open the configured database directly and recompute usage count,
win rate and total P&L for every method.

Safe to run while the server is up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.NewDatabase(a.cfg.Database)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			store := gormstore.New(db)
			methods, err := store.ListMethods(cmd.Context())
			if err != nil {
				return fmt.Errorf("list methods: %w", err)
			}

			syncer := journal.NewSynchronizer(store, a.log, nil)
			if err := syncer.RecomputeAll(cmd.Context()); err != nil {
				for _, e := range multierr.Errors(err) {
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", e)
				}
				return fmt.Errorf("recompute failed for %d of %d methods", len(multierr.Errors(err)), len(methods))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Recomputed %d methods\n", len(methods))
			return nil
		},
	}
}
