package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"trading-journal-go/internal/client"
	"trading-journal-go/internal/models"

	"github.com/spf13/cobra"
)

// tradeFlags are the list filters shared by trades list and export.
type tradeFlags struct {
	symbol, method, result, from, to string
}

func (f *tradeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.symbol, "symbol", "", "exact symbol match")
	cmd.Flags().StringVar(&f.method, "method", "", "method id")
	cmd.Flags().StringVar(&f.result, "result", "", "win, loss or breakeven")
	cmd.Flags().StringVar(&f.from, "from", "", "start date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date (YYYY-MM-DD or RFC3339)")
}

func (f *tradeFlags) query() client.TradeQuery {
	return client.TradeQuery{
		Symbol:    f.symbol,
		MethodID:  f.method,
		Result:    f.result,
		StartDate: f.from,
		EndDate:   f.to,
	}
}

func newTradesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Query journal trades",
		Long: `Query trades from the journal server.

Subcommands:
  recent - The newest trades
  list   - Trades matching filters, newest first

Examples:
  journalctl trades recent --limit 10
  journalctl trades list --symbol EUR/USD --result win --from 2024-01-01`,
	}

	var limit int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "List the newest trades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trades, err := a.client().RecentTrades(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printTrades(cmd.OutOrStdout(), trades)
		},
	}
	recent.Flags().IntVarP(&limit, "limit", "n", 0, "number of trades (server default when 0)")

	var filters tradeFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List trades matching filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trades, err := a.client().ListTrades(cmd.Context(), filters.query())
			if err != nil {
				return err
			}
			return printTrades(cmd.OutOrStdout(), trades)
		},
	}
	filters.register(list)

	cmd.AddCommand(recent, list)
	return cmd
}

func printTrades(out io.Writer, trades []models.Trade) error {
	if len(trades) == 0 {
		_, err := fmt.Fprintln(out, "No trades.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tENTRY\tSYMBOL\tSIDE\tLOTS\tPROFIT\tRESULT\tMETHOD")
	for _, t := range trades {
		entry := "-"
		if t.EntryTime != nil {
			entry = t.EntryTime.Format("2006-01-02 15:04")
		}
		profit := "-"
		if t.Profit != nil {
			profit = fmt.Sprintf("%.2f", *t.Profit)
		}
		result := string(t.Result)
		if result == "" {
			result = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%g\t%s\t%s\t%s\n", t.ID, entry, t.Symbol, t.Direction, t.Lots, profit, result, t.MethodName)
	}
	return w.Flush()
}
