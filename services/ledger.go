package services

import (
	"errors"

	"riches/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostGatewayCredit credits a confirmed gateway payment to the user's wallet at
// most once per payment reference. The lookup on payment_ref is the real
// idempotency guard; the unique index backs it up if two appliers race past the
// read. Returns false when the reference was already posted.
func PostGatewayCredit(tx *gorm.DB, userID uint, paymentRef string, amount decimal.Decimal, orderID uint) (bool, error) {
	var existing models.Transaction
	err := tx.Where("payment_ref = ?", paymentRef).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
		return false, err
	}

	before := user.WalletBalance
	user.WalletBalance = user.WalletBalance.Add(amount)
	if err := tx.Save(&user).Error; err != nil {
		return false, err
	}

	entry := models.Transaction{
		UserID:        user.ID,
		OrderID:       orderID,
		TrxType:       models.TrxDeposit,
		Amount:        amount,
		PaymentRef:    &paymentRef,
		BalanceBefore: before,
		BalanceAfter:  user.WalletBalance,
		Note:          "Gateway payment " + paymentRef,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return false, err
	}

	return true, nil
}
