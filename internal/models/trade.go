package models

import (
	"time"

	"gorm.io/datatypes"
)

// Direction is the side of a trade.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Result is the user-selected outcome of a trade. It is not derived from
// Profit and the two may disagree.
type Result string

const (
	ResultNone      Result = ""
	ResultWin       Result = "win"
	ResultLoss      Result = "loss"
	ResultBreakeven Result = "breakeven"
)

// Trade represents one logged trade in the journal.
type Trade struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	Symbol         string                      `gorm:"type:varchar(20);not null;index" json:"symbol"`
	Direction      Direction                   `gorm:"type:varchar(10);not null" json:"direction"`
	EntryPrice     float64                     `gorm:"not null" json:"entryPrice"`
	ExitPrice      *float64                    `json:"exitPrice"`
	EntryTime      *time.Time                  `gorm:"index" json:"entryTime"`
	ExitTime       *time.Time                  `json:"exitTime"`
	Lots           float64                     `gorm:"not null" json:"lots"`
	Profit         *float64                    `json:"profit"`
	ExpectedProfit *float64                    `json:"expectedProfit"`
	MethodID       *string                     `gorm:"type:varchar(50);index" json:"methodId"`
	MethodName     string                      `gorm:"type:varchar(100)" json:"methodName"` // name of the method when the trade was last written
	Notes          string                      `gorm:"type:text" json:"notes"`
	Tags           datatypes.JSONSlice[string] `json:"tags"`
	Result         Result                      `gorm:"type:varchar(10);index" json:"result,omitempty"`
	CreatedAt      time.Time                   `json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
}

// MethodKey returns the trade's method id, or "" when it has none.
func (t *Trade) MethodKey() string {
	if t.MethodID == nil {
		return ""
	}
	return *t.MethodID
}
