package models

import "time"

// Method is a reusable trading strategy that trades are tagged with.
// UsageCount, WinRate and TotalPnL are derived from the trades referencing
// the method and are only written by the statistics synchronizer.
type Method struct {
	ID          string    `gorm:"primaryKey;type:varchar(50)" json:"id"`
	Code        string    `gorm:"type:varchar(50);not null" json:"code"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsDefault   bool      `gorm:"not null;default:false" json:"is_default"`
	UsageCount  int       `gorm:"not null;default:0" json:"usage_count"`
	WinRate     float64   `gorm:"not null;default:0" json:"win_rate"`
	TotalPnL    float64   `gorm:"column:total_pnl;not null;default:0" json:"total_pnl"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MethodStats holds the derived fields of a Method.
type MethodStats struct {
	UsageCount int
	WinRate    float64
	TotalPnL   float64
}
