package journal

import (
	"context"
	"fmt"
	"time"

	"trading-journal-go/internal/metrics"
	"trading-journal-go/internal/models"
	"trading-journal-go/internal/repository"

	"go.uber.org/zap"
)

// StatsService loads trades for a date range and aggregates them.
type StatsService struct {
	repo        repository.TradeRepository
	loc         *time.Location
	recentLimit int
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewStatsService(repo repository.TradeRepository, loc *time.Location, recentLimit int, m *metrics.Metrics, logger *zap.Logger) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &StatsService{
		repo:        repo,
		loc:         loc,
		recentLimit: recentLimit,
		metrics:     m,
		logger:      logger.Named("stats"),
	}
}

// Location is the timezone profit curve days are taken in.
func (s *StatsService) Location() *time.Location {
	return s.loc
}

func (s *StatsService) GetStats(ctx context.Context, r DateRange) (*Stats, error) {
	start := time.Now()

	trades, err := s.repo.ListTrades(ctx, repository.TradeFilter{StartDate: r.Start, EndDate: r.End})
	if err != nil {
		return nil, fmt.Errorf("load trades for stats: %w", err)
	}
	stats := Aggregate(trades, s.loc)

	s.metrics.ObserveStats(time.Since(start))
	s.logger.Debug("Computed stats",
		zap.Int("trades", len(trades)),
		zap.Duration("took", time.Since(start)),
	)
	return &stats, nil
}

// Recent returns the newest trades by entry time. A non-positive limit uses the configured default.
func (s *StatsService) Recent(ctx context.Context, limit int) ([]models.Trade, error) {
	if limit <= 0 {
		limit = s.recentLimit
	}
	return s.repo.ListTrades(ctx, repository.TradeFilter{Limit: limit})
}
