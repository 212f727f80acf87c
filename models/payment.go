package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// PendingPayment tracks one hosted-gateway session awaiting confirmation.
// JobRef is the gateway's session key and is unique; PaymentRef is learned
// later from the webhook or status poll. Status transitions one way:
// pending -> completed or pending -> failed.
type PendingPayment struct {
	gorm.Model

	UserID  uint `gorm:"index" json:"user_id"`
	OrderID uint `gorm:"index" json:"order_id"`

	JobRef     string          `gorm:"uniqueIndex;size:64" json:"job_ref"`
	PaymentRef string          `gorm:"size:64;index" json:"payment_ref"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount"`
	Status     string          `gorm:"size:16;index" json:"status"`
}
