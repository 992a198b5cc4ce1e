package journal

import (
	"context"
	"testing"

	"trading-journal-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMethodService(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	svc := NewMethodService(store, zap.NewNop())

	t.Run("CreateGeneratesIDAndZeroStats", func(t *testing.T) {
		m, err := svc.Create(ctx, MethodInput{Code: " BO ", Name: "Breakout", IsDefault: true})
		require.NoError(t, err)

		assert.Len(t, m.ID, 26)
		assert.Equal(t, "BO", m.Code)
		assert.True(t, m.IsDefault)
		assert.Zero(t, m.UsageCount)
		assert.Zero(t, m.WinRate)
		assert.Zero(t, m.TotalPnL)
	})

	t.Run("CreateValidation", func(t *testing.T) {
		_, err := svc.Create(ctx, MethodInput{Code: "X"})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "name", ve.Field)
		assert.Equal(t, "name is required", ve.Error())
	})

	t.Run("UpdateKeepsDerivedFields", func(t *testing.T) {
		m, err := svc.Create(ctx, MethodInput{Code: "PB", Name: "Pullback"})
		require.NoError(t, err)
		require.NoError(t, store.UpdateMethodStats(ctx, m.ID, models.MethodStats{UsageCount: 4, WinRate: 0.75, TotalPnL: 120}))

		updated, err := svc.Update(ctx, m.ID, MethodInput{Code: "PB2", Name: "Deep pullback", Description: "50% retrace"})
		require.NoError(t, err)

		assert.Equal(t, "PB2", updated.Code)
		assert.Equal(t, "Deep pullback", updated.Name)
		assert.Equal(t, "50% retrace", updated.Description)
		assert.Equal(t, 4, updated.UsageCount)
		assert.Equal(t, 0.75, updated.WinRate)
		assert.Equal(t, 120.0, updated.TotalPnL)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = svc.Update(ctx, "missing", MethodInput{Code: "X", Name: "Y"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestNewMethodID_Sorted(t *testing.T) {
	prev := NewMethodID()
	for i := 0; i < 100; i++ {
		next := NewMethodID()
		assert.Greater(t, next, prev)
		prev = next
	}
}
