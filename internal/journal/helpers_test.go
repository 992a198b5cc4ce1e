package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"trading-journal-go/internal/config"
	"trading-journal-go/internal/database"
	"trading-journal-go/internal/models"
	"trading-journal-go/internal/repository/gormstore"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecomputer is a mock implementation of the Recomputer interface.
type MockRecomputer struct {
	mock.Mock
}

func (m *MockRecomputer) Recompute(ctx context.Context, methodID string) error {
	args := m.Called(ctx, methodID)
	return args.Error(0)
}

// MockAllRecomputer is a mock implementation of the AllRecomputer interface.
type MockAllRecomputer struct {
	mock.Mock
}

func (m *MockAllRecomputer) RecomputeAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// setupStore creates a sqlite-backed store in a per-test directory.
func setupStore(t *testing.T) *gormstore.Store {
	t.Helper()
	db, err := database.NewDatabase(config.Database{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "journal.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	return gormstore.New(db)
}

func ptr[T any](v T) *T { return &v }

func day(s string, hour int) *time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	t := d.Add(time.Duration(hour) * time.Hour)
	return &t
}

func seedMethod(t *testing.T, store *gormstore.Store, id, name string) {
	t.Helper()
	require.NoError(t, store.CreateMethod(context.Background(), &models.Method{ID: id, Code: id, Name: name}))
}

func tradeInput(methodID string, profit float64, result models.Result) TradeInput {
	in := TradeInput{
		Symbol:     "EUR/USD",
		Direction:  models.DirectionLong,
		EntryPrice: 1.1,
		Lots:       1,
		Profit:     ptr(profit),
		Result:     result,
	}
	if methodID != "" {
		in.MethodID = ptr(methodID)
	}
	return in
}
