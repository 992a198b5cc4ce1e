package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"trading-journal-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleTrades() []models.Trade {
	entry := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	return []models.Trade{
		{
			ID:         1,
			Symbol:     "EUR/USD",
			Direction:  models.DirectionLong,
			EntryPrice: 1.085,
			ExitPrice:  ptr(1.0875),
			EntryTime:  &entry,
			Lots:       1,
			Profit:     ptr(250.0),
			MethodID:   ptr("01HXMETHOD"),
			MethodName: "Breakout",
			Result:     models.ResultWin,
			Tags:       []string{"london open", "trend"},
			Notes:      "clean retest, \"textbook\"",
		},
		{
			ID:         2,
			Symbol:     "GBP/USD",
			Direction:  models.DirectionShort,
			EntryPrice: 1.27,
			Lots:       0.5,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTrades()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{
		"1", "EUR/USD", "long", "1.085", "1.0875", "2024-03-15T10:30:00Z", "",
		"1", "250", "", "01HXMETHOD", "Breakout", "win", "london open;trend", "clean retest, \"textbook\"",
	}, rows[1])

	// optional fields stay empty
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, "", rows[2][8])
	assert.Equal(t, "", rows[2][10])
	assert.Equal(t, "0.5", rows[2][7])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(CSVHeader, ",")+"\n", buf.String())
}

func TestFormatTradeOrg(t *testing.T) {
	result := FormatTradeOrg(sampleTrades()[0])

	assert.True(t, strings.HasPrefix(result, "** Trade: EUR/USD long (#1) :london_open:trend:\n"))
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":TRADE_ID: 1")
	assert.Contains(t, result, ":ENTRY_PRICE: 1.085")
	assert.Contains(t, result, ":EXIT_PRICE: 1.0875")
	assert.Contains(t, result, ":ENTRY_TIME: 2024-03-15T10:30:00Z")
	assert.Contains(t, result, ":PROFIT: 250.00")
	assert.Contains(t, result, ":RESULT: win")
	assert.Contains(t, result, ":METHOD: Breakout")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "*** Review\nclean retest")
	assert.NotContains(t, result, ":EXIT_TIME:")
}

func TestFormatTradeOrg_Minimal(t *testing.T) {
	result := FormatTradeOrg(sampleTrades()[1])

	assert.True(t, strings.HasPrefix(result, "** Trade: GBP/USD short (#2)\n"))
	assert.NotContains(t, result, ":PROFIT:")
	assert.NotContains(t, result, ":METHOD_ID:")
	assert.NotContains(t, result, ":RESULT:")
	assert.Contains(t, result, "*** Review\n- \n")
}

func TestWriteOrg(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrg(&buf, sampleTrades()))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, ":PROPERTIES:"))
	assert.Contains(t, out, "\n\n** Trade: GBP/USD")
}
