package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	KindCompetition = "competition"
	KindSpin        = "spin"
	KindScratch     = "scratch"
)

type Item struct {
	gorm.Model

	Name        string          `gorm:"size:128" json:"name"`
	Kind        string          `gorm:"size:16;index" json:"kind"`
	Price       decimal.Decimal `gorm:"type:decimal(15,2)" json:"price"`
	MaxPerOrder int             `gorm:"default:50" json:"max_per_order"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
}
