// Package export renders journal trades into file formats for use outside the app.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"trading-journal-go/internal/models"
)

// CSVHeader is the fixed column order of WriteCSV.
var CSVHeader = []string{
	"id", "symbol", "direction", "entry_price", "exit_price", "entry_time", "exit_time",
	"lots", "profit", "expected_profit", "method_id", "method_name", "result", "tags", "notes",
}

// WriteCSV writes a header row followed by one row per trade.
// Absent optional values are written as empty cells.
func WriteCSV(w io.Writer, trades []models.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range trades {
		row := []string{
			strconv.FormatUint(uint64(t.ID), 10),
			t.Symbol,
			string(t.Direction),
			num(t.EntryPrice),
			optNum(t.ExitPrice),
			optTime(t.EntryTime),
			optTime(t.ExitTime),
			num(t.Lots),
			optNum(t.Profit),
			optNum(t.ExpectedProfit),
			t.MethodKey(),
			t.MethodName,
			string(t.Result),
			strings.Join(t.Tags, ";"),
			t.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write trade %d: %w", t.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func optNum(x *float64) string {
	if x == nil {
		return ""
	}
	return num(*x)
}

func optTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
