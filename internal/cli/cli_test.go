package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"trading-journal-go/internal/config"
	"trading-journal-go/internal/database"
	"trading-journal-go/internal/export"
	"trading-journal-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tradeListBody = `{"success":true,"data":[
	{"id":2,"symbol":"EUR/USD","direction":"long","entryPrice":1.1,"lots":1,"profit":40,"result":"win","methodName":"Breakout","tags":[]},
	{"id":1,"symbol":"GBP/USD","direction":"short","entryPrice":1.27,"lots":0.5,"profit":null,"tags":["news"]}]}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func apiServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"message":"route not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStatsCommand(t *testing.T) {
	srv := apiServer(t, map[string]string{
		"/api/stats": `{"success":true,"data":{
			"overview":{"totalTrades":2,"winTrades":1,"lossTrades":1,"winRate":50,"totalProfit":30,"profitFactor":4},
			"symbolStats":[{"symbol":"EUR/USD","count":2,"wins":1,"profit":30,"expectedProfit":0,"winRate":"50.00"}],
			"methodStats":[{"methodId":null,"methodName":"","count":2,"wins":1,"profit":30,"expectedProfit":0,"winRate":"50.00"}],
			"profitCurve":[]}}`,
	})

	out, err := run(t, "stats", "--config", t.TempDir(), "--base-url", srv.URL+"/api", "--from", "2024-01-01")

	require.NoError(t, err)
	assert.Contains(t, out, "Win rate:")
	assert.Contains(t, out, "50.00%")
	assert.Contains(t, out, "Profit factor:")
	assert.Contains(t, out, "EUR/USD")
	assert.Contains(t, out, "(none)")
}

func TestStatsCommand_APIError(t *testing.T) {
	srv := apiServer(t, nil)

	_, err := run(t, "stats", "--config", t.TempDir(), "--base-url", srv.URL+"/api")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "route not found")
}

func TestTradesCommands(t *testing.T) {
	srv := apiServer(t, map[string]string{
		"/api/trades/list":  tradeListBody,
		"/api/stats/recent": `{"success":true,"data":[]}`,
	})

	t.Run("List", func(t *testing.T) {
		out, err := run(t, "trades", "list", "--config", t.TempDir(), "--base-url", srv.URL+"/api", "--symbol", "EUR/USD")
		require.NoError(t, err)
		assert.Contains(t, out, "SYMBOL")
		assert.Contains(t, out, "Breakout")
		assert.Contains(t, out, "40.00")
	})

	t.Run("RecentEmpty", func(t *testing.T) {
		out, err := run(t, "trades", "recent", "--config", t.TempDir(), "--base-url", srv.URL+"/api", "--limit", "3")
		require.NoError(t, err)
		assert.Equal(t, "No trades.\n", out)
	})
}

func TestExportCommand(t *testing.T) {
	srv := apiServer(t, map[string]string{"/api/trades/list": tradeListBody})

	t.Run("CSVToFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trades.csv")
		_, err := run(t, "export", "--config", t.TempDir(), "--base-url", srv.URL+"/api", "--format", "csv", "--out", path)
		require.NoError(t, err)

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, export.CSVHeader, rows[0])
		assert.Equal(t, "2", rows[1][0])
		assert.Equal(t, "news", rows[2][13])
	})

	t.Run("OrgToStdout", func(t *testing.T) {
		out, err := run(t, "export", "--config", t.TempDir(), "--base-url", srv.URL+"/api", "--format", "org")
		require.NoError(t, err)
		assert.Contains(t, out, "** Trade: EUR/USD long (#2)")
		assert.Contains(t, out, "** Trade: GBP/USD short (#1) :news:")
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := run(t, "export", "--config", t.TempDir(), "--base-url", srv.URL+"/api", "--format", "xlsx")
		assert.ErrorContains(t, err, `unknown export format "xlsx"`)
	})
}

func TestRecomputeCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Database.DSN = filepath.Join(dir, "journal.db")
	require.NoError(t, cfg.Save(filepath.Join(dir, "config.yml")))

	db, err := database.NewDatabase(cfg.Database)
	require.NoError(t, err)
	methodID := "01HXBREAKOUT"
	require.NoError(t, db.Create(&models.Method{ID: methodID, Code: "BO", Name: "Breakout", UsageCount: 99, WinRate: 1}).Error)
	win, loss := 30.0, -10.0
	require.NoError(t, db.Create(&models.Trade{Symbol: "EUR/USD", Direction: models.DirectionLong, EntryPrice: 1, Lots: 1, Profit: &win, MethodID: &methodID, Result: models.ResultWin}).Error)
	require.NoError(t, db.Create(&models.Trade{Symbol: "EUR/USD", Direction: models.DirectionLong, EntryPrice: 1, Lots: 1, Profit: &loss, MethodID: &methodID, Result: models.ResultLoss}).Error)

	out, err := run(t, "recompute", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Recomputed 1 methods")

	var m models.Method
	require.NoError(t, db.First(&m, "id = ?", methodID).Error)
	assert.Equal(t, 2, m.UsageCount)
	assert.Equal(t, 0.5, m.WinRate)
	assert.Equal(t, 20.0, m.TotalPnL)
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	out, err := run(t, "config", "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
