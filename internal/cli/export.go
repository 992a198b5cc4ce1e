package cli

import (
	"fmt"
	"io"
	"os"

	"trading-journal-go/internal/export"
	"trading-journal-go/internal/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		filters tradeFlags
		format  string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trades as CSV or Org-mode entries",
		Long: `Export the filtered trade list, newest first.

Examples:
  journalctl export --format csv --out trades.csv
  journalctl export --format org --symbol EUR/USD --from 2024-01-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			write, err := exporter(format)
			if err != nil {
				return err
			}

			trades, err := a.client().ListTrades(cmd.Context(), filters.query())
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				return write(cmd.OutOrStdout(), trades)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := write(f, trades); err != nil {
				f.Close()
				return fmt.Errorf("export: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			a.log.Debug("Exported trades", zap.Int("count", len(trades)), zap.String("format", format), zap.String("path", out))
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported %d trades to %s\n", len(trades), out)
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or org")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	return cmd
}

func exporter(format string) (func(io.Writer, []models.Trade) error, error) {
	switch format {
	case "csv":
		return export.WriteCSV, nil
	case "org":
		return export.WriteOrg, nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want csv or org)", format)
	}
}
