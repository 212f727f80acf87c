package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RewardCash     = "cash"
	RewardPoints   = "points"
	RewardLose     = "lose"
	RewardPhysical = "physical"
	RewardTryAgain = "try_again"
)

// Prize is one configured reward segment. Weight is its relative draw chance;
// MaxWins, when set, caps how many times it can ever be won. The live win count
// is derived from PrizeWin rows, never stored here.
type Prize struct {
	gorm.Model

	Label       string          `gorm:"size:64" json:"label"`
	Game        string          `gorm:"size:16;index" json:"game"`
	RewardType  string          `gorm:"size:16" json:"reward_type"`
	RewardValue decimal.Decimal `gorm:"type:decimal(15,2)" json:"reward_value"`
	Weight      int             `gorm:"not null" json:"weight"`
	MaxWins     *int            `json:"max_wins,omitempty"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
}

// PrizeWin is append-only; the per-prize row count enforces MaxWins.
type PrizeWin struct {
	gorm.Model

	UserID  uint `gorm:"index" json:"user_id"`
	PrizeID uint `gorm:"index" json:"prize_id"`
	OrderID uint `gorm:"index" json:"order_id"`

	RewardType  string          `gorm:"size:16" json:"reward_type"`
	RewardValue decimal.Decimal `gorm:"type:decimal(15,2)" json:"reward_value"`
}
