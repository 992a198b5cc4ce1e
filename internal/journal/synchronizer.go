package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"trading-journal-go/internal/metrics"
	"trading-journal-go/internal/models"
	"trading-journal-go/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Recomputer rebuilds the derived statistics of one method.
type Recomputer interface {
	Recompute(ctx context.Context, methodID string) error
}

// Synchronizer keeps a Method's usage_count, win_rate and total_pnl equal to
// what its current trades imply. Every pass recomputes from the full trade set.
type Synchronizer struct {
	repo    repository.Repository
	logger  *zap.Logger
	metrics *metrics.Metrics
	locks   keyedMutex
}

var _ Recomputer = (*Synchronizer)(nil)

func NewSynchronizer(repo repository.Repository, logger *zap.Logger, m *metrics.Metrics) *Synchronizer {
	return &Synchronizer{
		repo:    repo,
		logger:  logger.Named("synchronizer"),
		metrics: m,
	}
}

// Recompute rebuilds the derived fields of methodID. An empty id is a no-op.
// A method that no longer exists is logged and skipped, since it may have been
// deleted while the triggering trade write was in flight.
func (s *Synchronizer) Recompute(ctx context.Context, methodID string) error {
	if methodID == "" {
		return nil
	}

	unlock := s.locks.lock(methodID)
	defer unlock()

	if _, err := s.repo.GetMethod(ctx, methodID); err != nil {
		return s.handleErr(methodID, "load method", err)
	}

	trades, err := s.repo.ListTrades(ctx, repository.TradeFilter{MethodID: methodID})
	if err != nil {
		return s.handleErr(methodID, "load trades", err)
	}

	stats := ComputeMethodStats(trades)
	if err := s.repo.UpdateMethodStats(ctx, methodID, stats); err != nil {
		return s.handleErr(methodID, "save stats", err)
	}

	s.metrics.RecordRecompute(metrics.OutcomeOK)
	s.logger.Debug("Recomputed method statistics",
		zap.String("method_id", methodID),
		zap.Int("usage_count", stats.UsageCount),
		zap.Float64("win_rate", stats.WinRate),
		zap.Float64("total_pnl", stats.TotalPnL),
	)
	return nil
}

func (s *Synchronizer) handleErr(methodID, step string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		s.metrics.RecordRecompute(metrics.OutcomeMissing)
		s.logger.Warn("Method vanished before recompute, skipping",
			zap.String("method_id", methodID),
			zap.String("step", step),
		)
		return nil
	}
	s.metrics.RecordRecompute(metrics.OutcomeError)
	return fmt.Errorf("recompute method %s: %s: %w", methodID, step, err)
}

// RecomputeAll recomputes every method and returns the combined failures.
func (s *Synchronizer) RecomputeAll(ctx context.Context) error {
	methods, err := s.repo.ListMethods(ctx)
	if err != nil {
		return fmt.Errorf("recompute all: %w", err)
	}

	var errs error
	for _, m := range methods {
		if ctx.Err() != nil {
			return multierr.Append(errs, ctx.Err())
		}
		errs = multierr.Append(errs, s.Recompute(ctx, m.ID))
	}

	s.logger.Info("Recomputed all methods",
		zap.Int("methods", len(methods)),
		zap.Int("failures", len(multierr.Errors(errs))),
	)
	return errs
}

// ComputeMethodStats derives a method's statistics from the trades referencing it.
// win_rate is the win fraction in [0,1]; a missing profit counts as zero.
func ComputeMethodStats(trades []models.Trade) models.MethodStats {
	wins := 0
	total := decimal.Zero
	for i := range trades {
		if trades[i].Result == models.ResultWin {
			wins++
		}
		total = total.Add(dec(trades[i].Profit))
	}
	return models.MethodStats{
		UsageCount: len(trades),
		WinRate:    toFloat(ratio(decimal.NewFromInt(int64(wins)), decimal.NewFromInt(int64(len(trades))))),
		TotalPnL:   toFloat(total),
	}
}

// keyedMutex serializes work per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
