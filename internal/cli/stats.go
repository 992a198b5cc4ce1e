package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"trading-journal-go/internal/journal"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print performance statistics",
		Long: `Fetch the statistics snapshot from the journal server.

Dates are YYYY-MM-DD or RFC3339; a date-only --to includes the whole day.

Examples:
  journalctl stats
  journalctl stats --from 2024-01-01 --to 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := a.client().GetStats(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			return printStats(cmd.OutOrStdout(), stats)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date")
	cmd.Flags().StringVar(&to, "to", "", "end date")
	return cmd
}

func printStats(out io.Writer, s *journal.Stats) error {
	o := s.Overview
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Trades:\t%d\t(wins %d, losses %d, breakeven %d)\n", o.TotalTrades, o.WinTrades, o.LossTrades, o.BreakevenTrades)
	fmt.Fprintf(w, "Win rate:\t%.2f%%\n", o.WinRate)
	fmt.Fprintf(w, "Total profit:\t%.2f\t(expected %.2f)\n", o.TotalProfit, o.TotalExpectedProfit)
	fmt.Fprintf(w, "Avg profit:\t%.2f\t(expected %.2f)\n", o.AvgProfit, o.AvgExpectedProfit)
	fmt.Fprintf(w, "Avg win / loss:\t%.2f / %.2f\n", o.AvgWin, o.AvgLoss)
	fmt.Fprintf(w, "Profit factor:\t%.2f\n", o.ProfitFactor)

	if len(s.SymbolStats) > 0 {
		fmt.Fprintln(w, "\nSYMBOL\tTRADES\tWINS\tWIN RATE\tPROFIT\tEXPECTED")
		for _, r := range s.SymbolStats {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s%%\t%.2f\t%.2f\n", r.Symbol, r.Count, r.Wins, r.WinRate, r.Profit, r.ExpectedProfit)
		}
	}

	if len(s.MethodStats) > 0 {
		fmt.Fprintln(w, "\nMETHOD\tTRADES\tWINS\tWIN RATE\tPROFIT\tEXPECTED")
		for _, r := range s.MethodStats {
			name := r.MethodName
			if name == "" {
				name = "(none)"
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%s%%\t%.2f\t%.2f\n", name, r.Count, r.Wins, r.WinRate, r.Profit, r.ExpectedProfit)
		}
	}

	return w.Flush()
}
