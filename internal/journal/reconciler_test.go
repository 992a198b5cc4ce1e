package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewReconciler_InvalidSchedule(t *testing.T) {
	_, err := NewReconciler("every now and then", new(MockAllRecomputer), zap.NewNop())
	assert.ErrorContains(t, err, "invalid reconcile schedule")
}

func TestReconciler_Run(t *testing.T) {
	target := new(MockAllRecomputer)
	ran := make(chan struct{}, 4)
	target.On("RecomputeAll", mock.Anything).
		Run(func(mock.Arguments) { ran <- struct{}{} }).
		Return(errors.New("one method failed"))

	r, err := NewReconciler("@every 1s", target, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("reconciliation did not run")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
