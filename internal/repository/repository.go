package repository

import (
	"context"
	"errors"
	"time"

	"trading-journal-go/internal/models"
)

// ErrNotFound is returned when a Trade or Method id does not exist.
var ErrNotFound = errors.New("record not found")

// TradeFilter selects trades. Empty strings and nil times leave that side unfiltered.
// StartDate and EndDate bound entry_time inclusively.
type TradeFilter struct {
	Symbol    string
	MethodID  string
	Result    models.Result
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int // 0 means no limit
}

type TradeRepository interface {
	// ListTrades returns matching trades ordered by entry time, newest first.
	ListTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	GetTrade(ctx context.Context, id uint) (*models.Trade, error)
	CreateTrade(ctx context.Context, trade *models.Trade) error
	// UpdateTrade replaces every user field of the trade with the given id.
	UpdateTrade(ctx context.Context, trade *models.Trade) error
	DeleteTrade(ctx context.Context, id uint) error
}

type MethodRepository interface {
	ListMethods(ctx context.Context) ([]models.Method, error)
	GetMethod(ctx context.Context, id string) (*models.Method, error)
	CreateMethod(ctx context.Context, method *models.Method) error
	// UpdateMethod writes code, name, description and is_default only.
	UpdateMethod(ctx context.Context, method *models.Method) error
	// DeleteMethod removes the method and clears method_id on the trades that referenced it.
	DeleteMethod(ctx context.Context, id string) error
	// UpdateMethodStats writes the derived usage_count, win_rate and total_pnl columns only.
	UpdateMethodStats(ctx context.Context, id string, stats models.MethodStats) error
}

// Repository is the full store the journal services run against.
type Repository interface {
	TradeRepository
	MethodRepository
	Ping(ctx context.Context) error
}
