package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trading-journal-go/internal/models"
	"trading-journal-go/internal/repository"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// TradeInput is the user-editable part of a Trade. Create and Update both
// take the full set of fields.
type TradeInput struct {
	Symbol         string           `json:"symbol" validate:"required,max=20"`
	Direction      models.Direction `json:"direction" validate:"required,oneof=long short"`
	EntryPrice     float64          `json:"entryPrice" validate:"gt=0"`
	ExitPrice      *float64         `json:"exitPrice"`
	EntryTime      *Timestamp       `json:"entryTime"`
	ExitTime       *Timestamp       `json:"exitTime"`
	Lots           float64          `json:"lots" validate:"gt=0"`
	Profit         *float64         `json:"profit"`
	ExpectedProfit *float64         `json:"expectedProfit"`
	MethodID       *string          `json:"methodId"`
	Notes          string           `json:"notes"`
	Tags           []string         `json:"tags"`
	Result         models.Result    `json:"result" validate:"omitempty,oneof=win loss breakeven"`
}

// TradeService handles trade reads and writes and keeps the affected methods'
// statistics in step with them.
type TradeService struct {
	repo       repository.Repository
	recomputer Recomputer
	loc        *time.Location // zoneless input times are read in loc
	logger     *zap.Logger
}

func NewTradeService(repo repository.Repository, recomputer Recomputer, loc *time.Location, logger *zap.Logger) *TradeService {
	if loc == nil {
		loc = time.UTC
	}
	return &TradeService{
		repo:       repo,
		recomputer: recomputer,
		loc:        loc,
		logger:     logger.Named("trades"),
	}
}

func (s *TradeService) List(ctx context.Context, filter repository.TradeFilter) ([]models.Trade, error) {
	trades, err := s.repo.ListTrades(ctx, filter)
	if err != nil {
		return nil, err
	}
	return trades, nil
}

func (s *TradeService) Get(ctx context.Context, id uint) (*models.Trade, error) {
	return s.repo.GetTrade(ctx, id)
}

// Create validates and stores a new trade, then recomputes its method.
func (s *TradeService) Create(ctx context.Context, in TradeInput) (*models.Trade, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.MethodID == nil || strings.TrimSpace(*in.MethodID) == "" {
		return nil, newValidationError("methodId", "is required")
	}

	trade, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateTrade(ctx, trade); err != nil {
		return nil, err
	}

	s.logger.Info("Trade created",
		zap.Uint("id", trade.ID),
		zap.String("symbol", trade.Symbol),
		zap.String("method_id", trade.MethodKey()),
	)
	s.recompute(ctx, trade.MethodKey())
	return trade, nil
}

// Update replaces every user field of trade id. When the method changes both
// the new and the previous method are recomputed.
func (s *TradeService) Update(ctx context.Context, id uint, in TradeInput) (*models.Trade, error) {
	existing, err := s.repo.GetTrade(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	trade, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	trade.ID = existing.ID
	trade.CreatedAt = existing.CreatedAt
	if err := s.repo.UpdateTrade(ctx, trade); err != nil {
		return nil, err
	}

	s.logger.Info("Trade updated",
		zap.Uint("id", trade.ID),
		zap.String("method_id", trade.MethodKey()),
		zap.String("previous_method_id", existing.MethodKey()),
	)
	s.recompute(ctx, trade.MethodKey(), existing.MethodKey())
	return trade, nil
}

// Delete removes trade id and recomputes the method it referenced.
func (s *TradeService) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.GetTrade(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteTrade(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Trade deleted", zap.Uint("id", id), zap.String("method_id", existing.MethodKey()))
	s.recompute(ctx, existing.MethodKey())
	return nil
}

// recompute runs the synchronizer once per distinct non-empty id. The trade
// write has already succeeded, so failures are logged rather than returned.
func (s *TradeService) recompute(ctx context.Context, methodIDs ...string) {
	seen := make(map[string]bool, len(methodIDs))
	var errs error
	for _, id := range methodIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		errs = multierr.Append(errs, s.recomputer.Recompute(ctx, id))
	}
	if errs != nil {
		s.logger.Error("Failed to recompute method statistics", zap.Error(errs))
	}
}

// build maps input onto a new Trade and resolves the denormalized method name.
func (s *TradeService) build(ctx context.Context, in TradeInput) (*models.Trade, error) {
	trade := &models.Trade{
		Symbol:         strings.TrimSpace(in.Symbol),
		Direction:      in.Direction,
		EntryPrice:     in.EntryPrice,
		ExitPrice:      in.ExitPrice,
		Lots:           in.Lots,
		Profit:         in.Profit,
		ExpectedProfit: in.ExpectedProfit,
		Notes:          in.Notes,
		Tags:           normalizeTags(in.Tags),
		Result:         in.Result,
	}

	var err error
	if trade.EntryTime, err = in.EntryTime.In(s.loc); err != nil {
		return nil, newValidationError("entryTime", "%v", err)
	}
	if trade.ExitTime, err = in.ExitTime.In(s.loc); err != nil {
		return nil, newValidationError("exitTime", "%v", err)
	}

	if in.MethodID != nil {
		if id := strings.TrimSpace(*in.MethodID); id != "" {
			method, err := s.repo.GetMethod(ctx, id)
			if errors.Is(err, repository.ErrNotFound) {
				return nil, newValidationError("methodId", "references unknown method %q", id)
			}
			if err != nil {
				return nil, fmt.Errorf("resolve method %s: %w", id, err)
			}
			trade.MethodID = &id
			trade.MethodName = method.Name
		}
	}
	return trade, nil
}

// normalizeTags trims, drops empty and repeated tags, and keeps entry order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
