package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TrxDeposit       = "deposit"
	TrxWithdrawal    = "withdrawal"
	TrxPurchase      = "purchase"
	TrxPrize         = "prize"
	TrxRefund        = "refund"
	TrxReferral      = "referral"
	TrxReferralBonus = "referral_bonus"
)

type User struct {
	gorm.Model

	UserCode      string          `gorm:"uniqueIndex;size:32" json:"user_code"`
	WalletBalance decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"wallet_balance"`
	Points        int64           `gorm:"default:0" json:"points"`
	ReferredBy    string          `gorm:"size:32" json:"referred_by,omitempty"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`

	Transactions []Transaction `gorm:"foreignKey:UserID"`
	Orders       []Order       `gorm:"foreignKey:UserID"`
}

// Transaction is the append-only ledger. Rows are never updated or deleted;
// PaymentRef carries a unique index so an external settlement can post at most once.
type Transaction struct {
	gorm.Model

	UserID  uint   `gorm:"index"`
	OrderID uint   `gorm:"index"`
	TrxType string `gorm:"size:16;index"`

	Amount decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount"`
	Points int64           `json:"points"`

	PaymentRef    *string         `gorm:"size:64;uniqueIndex" json:"payment_ref,omitempty"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(15,2)" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(15,2)" json:"balance_after"`
	Note          string          `gorm:"size:255"`
}
