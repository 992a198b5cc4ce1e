package journal

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTimestamp(t *testing.T) {
	plus2 := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name    string
		json    string
		want    *time.Time
		wantErr bool
	}{
		{name: "RFC3339", json: `"2024-01-15T10:30:00Z"`, want: ptr(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))},
		{name: "RFC3339WithOffset", json: `"2024-01-15T10:30:00-05:00"`, want: ptr(time.Date(2024, 1, 15, 15, 30, 0, 0, time.UTC))},
		{name: "DateTimeIsWallClock", json: `"2024-01-15 10:30:00"`, want: ptr(time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC))},
		{name: "Empty", json: `""`},
		{name: "Garbage", json: `"next tuesday"`, wantErr: true},
		{name: "Number", json: `1705314600`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.json), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			got, err := ts.In(plus2)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s", got)
		})
	}
}

func TestTimestamp_NilResolvesToNil(t *testing.T) {
	var ts *Timestamp
	got, err := ts.In(time.UTC)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTradeService_ZonelessTimesUseLocation(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	seedMethod(t, store, "m1", "Breakout")
	minus5 := time.FixedZone("UTC-5", -5*60*60)

	var in TradeInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"symbol": "EUR/USD", "direction": "long", "entryPrice": 1.1, "lots": 1,
		"methodId": "m1", "entryTime": "2024-01-15 10:30:00", "exitTime": "2024-01-15T18:00:00Z"
	}`), &in))

	recomputer := new(MockRecomputer)
	recomputer.On("Recompute", mock.Anything, "m1").Return(nil)

	svc := NewTradeService(store, recomputer, minus5, zap.NewNop())
	trade, err := svc.Create(ctx, in)
	require.NoError(t, err)

	got, err := store.GetTrade(ctx, trade.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EntryTime)
	assert.Equal(t, time.Date(2024, 1, 15, 15, 30, 0, 0, time.UTC), got.EntryTime.UTC())
	assert.Equal(t, time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC), got.ExitTime.UTC())
}
