package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AllRecomputer rebuilds the statistics of every method.
type AllRecomputer interface {
	RecomputeAll(ctx context.Context) error
}

// Reconciler periodically recomputes every method so derived statistics left
// stale by racing writes converge.
type Reconciler struct {
	schedule string
	target   AllRecomputer
	logger   *zap.Logger
}

// NewReconciler validates schedule, a standard cron spec or descriptor such as "@every 1h".
func NewReconciler(schedule string, target AllRecomputer, logger *zap.Logger) (*Reconciler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", schedule, err)
	}
	return &Reconciler{
		schedule: schedule,
		target:   target,
		logger:   logger.Named("reconciler"),
	}, nil
}

// Run blocks until ctx is cancelled, reconciling on every tick of the schedule.
func (r *Reconciler) Run(ctx context.Context) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(r.schedule, func() { r.reconcile(ctx) }); err != nil {
		r.logger.Error("Failed to schedule reconciliation", zap.Error(err))
		return
	}

	r.logger.Info("Starting reconciler", zap.String("schedule", r.schedule))
	c.Start()

	<-ctx.Done()
	r.logger.Info("Stopping reconciler...")
	<-c.Stop().Done()
}

func (r *Reconciler) reconcile(ctx context.Context) {
	start := time.Now()
	if err := r.target.RecomputeAll(ctx); err != nil {
		r.logger.Error("Reconciliation finished with errors", zap.Error(err))
		return
	}
	r.logger.Info("Reconciliation finished", zap.Duration("took", time.Since(start)))
}
