package gormstore

import (
	"context"
	"errors"
	"fmt"

	"trading-journal-go/internal/models"
	"trading-journal-go/internal/repository"

	"gorm.io/gorm"
)

// Store implements repository.Repository on top of gorm.
type Store struct {
	db *gorm.DB
}

var _ repository.Repository = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// --- trades -----------------------------------------------------------------

func (s *Store) ListTrades(ctx context.Context, filter repository.TradeFilter) ([]models.Trade, error) {
	query := s.db.WithContext(ctx).Model(&models.Trade{})
	if filter.Symbol != "" {
		query = query.Where("symbol = ?", filter.Symbol)
	}
	if filter.MethodID != "" {
		query = query.Where("method_id = ?", filter.MethodID)
	}
	if filter.Result != models.ResultNone {
		query = query.Where("result = ?", filter.Result)
	}
	if filter.StartDate != nil {
		query = query.Where("entry_time >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("entry_time <= ?", filter.EndDate.UTC())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var trades []models.Trade
	if err := query.Order("entry_time DESC").Order("id DESC").Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return trades, nil
}

func (s *Store) GetTrade(ctx context.Context, id uint) (*models.Trade, error) {
	var trade models.Trade
	err := s.db.WithContext(ctx).First(&trade, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trade %d: %w", id, err)
	}
	return &trade, nil
}

func (s *Store) CreateTrade(ctx context.Context, trade *models.Trade) error {
	normalizeTimes(trade)
	if err := s.db.WithContext(ctx).Create(trade).Error; err != nil {
		return fmt.Errorf("create trade: %w", err)
	}
	return nil
}

func (s *Store) UpdateTrade(ctx context.Context, trade *models.Trade) error {
	normalizeTimes(trade)
	res := s.db.WithContext(ctx).
		Model(&models.Trade{}).
		Where("id = ?", trade.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(trade)
	if res.Error != nil {
		return fmt.Errorf("update trade %d: %w", trade.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return s.mustExist(ctx, &models.Trade{}, trade.ID)
	}
	return nil
}

func (s *Store) DeleteTrade(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Trade{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete trade %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// --- methods ----------------------------------------------------------------

func (s *Store) ListMethods(ctx context.Context) ([]models.Method, error) {
	var methods []models.Method
	if err := s.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&methods).Error; err != nil {
		return nil, fmt.Errorf("list methods: %w", err)
	}
	return methods, nil
}

func (s *Store) GetMethod(ctx context.Context, id string) (*models.Method, error) {
	var method models.Method
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get method %s: %w", id, err)
	}
	return &method, nil
}

func (s *Store) CreateMethod(ctx context.Context, method *models.Method) error {
	if err := s.db.WithContext(ctx).Create(method).Error; err != nil {
		return fmt.Errorf("create method: %w", err)
	}
	return nil
}

func (s *Store) UpdateMethod(ctx context.Context, method *models.Method) error {
	res := s.db.WithContext(ctx).
		Model(&models.Method{}).
		Where("id = ?", method.ID).
		Select("code", "name", "description", "is_default", "updated_at").
		Updates(method)
	if res.Error != nil {
		return fmt.Errorf("update method %s: %w", method.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return s.mustExist(ctx, &models.Method{}, method.ID)
	}
	return nil
}

func (s *Store) DeleteMethod(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Trade{}).
			Where("method_id = ?", id).
			Update("method_id", nil).Error; err != nil {
			return fmt.Errorf("detach trades from method %s: %w", id, err)
		}
		res := tx.Where("id = ?", id).Delete(&models.Method{})
		if res.Error != nil {
			return fmt.Errorf("delete method %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (s *Store) UpdateMethodStats(ctx context.Context, id string, stats models.MethodStats) error {
	res := s.db.WithContext(ctx).
		Model(&models.Method{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"usage_count": stats.UsageCount,
			"win_rate":    stats.WinRate,
			"total_pnl":   stats.TotalPnL,
		})
	if res.Error != nil {
		return fmt.Errorf("update method stats %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return s.mustExist(ctx, &models.Method{}, id)
	}
	return nil
}

// mustExist distinguishes a missing row from an update that changed nothing,
// which MySQL also reports as zero affected rows.
func (s *Store) mustExist(ctx context.Context, model any, id any) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func normalizeTimes(trade *models.Trade) {
	if trade.EntryTime != nil {
		t := trade.EntryTime.UTC()
		trade.EntryTime = &t
	}
	if trade.ExitTime != nil {
		t := trade.ExitTime.UTC()
		trade.ExitTime = &t
	}
}
