package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderFailed    = "failed"
	OrderExpired   = "expired"
)

// Order records a purchase and how its price was apportioned across tenders.
// WalletAmount + PointsAmount + GatewayAmount == TotalAmount once settled.
type Order struct {
	gorm.Model

	Ref      string `gorm:"uniqueIndex;size:36" json:"ref"`
	UserID   uint   `gorm:"index" json:"user_id"`
	ItemID   uint   `gorm:"index" json:"item_id"`
	Kind     string `gorm:"size:16" json:"kind"`
	Quantity int    `json:"quantity"`

	TotalAmount   decimal.Decimal `gorm:"type:decimal(15,2)" json:"total_amount"`
	WalletAmount  decimal.Decimal `gorm:"type:decimal(15,2)" json:"wallet_amount"`
	PointsAmount  decimal.Decimal `gorm:"type:decimal(15,2)" json:"points_amount"`
	GatewayAmount decimal.Decimal `gorm:"type:decimal(15,2)" json:"gateway_amount"`
	PaymentMethod string          `gorm:"size:64" json:"payment_method"`

	Status      string     `gorm:"size:16;index" json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// PlayUsage is one consumed play. The row count per order is checked against
// Order.Quantity under the order row lock before every insert.
type PlayUsage struct {
	gorm.Model

	OrderID uint `gorm:"index" json:"order_id"`
	UserID  uint `gorm:"index" json:"user_id"`
}

// Ticket is a competition entry issued when a competition order completes.
type Ticket struct {
	gorm.Model

	OrderID uint `gorm:"index" json:"order_id"`
	UserID  uint `gorm:"index" json:"user_id"`
	ItemID  uint `gorm:"index" json:"item_id"`
	Number  int  `json:"number"`
}
