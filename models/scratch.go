package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ScratchSymbol struct {
	gorm.Model

	Code     string `gorm:"uniqueIndex;size:16" json:"code"`
	Label    string `gorm:"size:64" json:"label"`
	Weight   int    `gorm:"not null" json:"weight"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// ScratchCard stores the grid of symbol codes revealed for one scratch play,
// so a card can be re-rendered exactly as first shown.
type ScratchCard struct {
	gorm.Model

	OrderID    uint `gorm:"index" json:"order_id"`
	UserID     uint `gorm:"index" json:"user_id"`
	PrizeWinID uint `gorm:"index" json:"prize_win_id"`

	Outcome string         `gorm:"size:16" json:"outcome"`
	Grid    datatypes.JSON `json:"grid"`
}
