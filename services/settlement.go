package services

import (
	"strings"

	"riches/helpers"
	"riches/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Split is how one order's price is apportioned across tenders. Wallet applies
// first, then points, then whatever is left goes to the hosted gateway.
// WalletUsed + PointsValue + GatewayRemainder always equals the total.
type Split struct {
	WalletUsed       decimal.Decimal
	PointsUsed       int64
	PointsValue      decimal.Decimal
	GatewayRemainder decimal.Decimal
	PaymentMethod    string
}

func SplitTender(total, walletBalance decimal.Decimal, points int64, useWallet, usePoints bool) Split {
	split := Split{
		WalletUsed:  decimal.Zero,
		PointsValue: decimal.Zero,
	}

	remaining := total

	if useWallet && remaining.IsPositive() && walletBalance.IsPositive() {
		split.WalletUsed = decimal.Min(walletBalance, remaining)
		remaining = remaining.Sub(split.WalletUsed)
	}

	if usePoints && remaining.IsPositive() && points > 0 {
		available := helpers.PointsToCurrency(points)
		covered := decimal.Min(available, remaining)
		// floor to whole points; the fractional sliver stays on the gateway side
		split.PointsUsed = helpers.CurrencyToPoints(covered)
		split.PointsValue = helpers.PointsToCurrency(split.PointsUsed)
		remaining = remaining.Sub(split.PointsValue)
	}

	split.GatewayRemainder = remaining
	split.PaymentMethod = tenderLabel(split)
	return split
}

func tenderLabel(split Split) string {
	var parts []string
	if split.WalletUsed.IsPositive() {
		parts = append(parts, "Wallet")
	}
	if split.PointsUsed > 0 {
		parts = append(parts, "Points")
	}
	if split.GatewayRemainder.IsPositive() {
		parts = append(parts, "Gateway")
	}
	if len(parts) == 0 {
		return "Free"
	}
	return strings.Join(parts, "+")
}

// ApplyTender debits wallet and points for the internal legs of a split and
// stamps the apportionment onto the order. The caller holds the user row lock
// and the enclosing transaction.
func ApplyTender(tx *gorm.DB, user *models.User, order *models.Order, split Split) error {
	if user.WalletBalance.LessThan(split.WalletUsed) || user.Points < split.PointsUsed {
		return ErrInsufficientFunds
	}

	if split.WalletUsed.IsPositive() {
		before := user.WalletBalance
		user.WalletBalance = user.WalletBalance.Sub(split.WalletUsed)
		entry := models.Transaction{
			UserID:        user.ID,
			OrderID:       order.ID,
			TrxType:       models.TrxPurchase,
			Amount:        split.WalletUsed.Neg(),
			BalanceBefore: before,
			BalanceAfter:  user.WalletBalance,
			Note:          "Wallet payment for order " + order.Ref,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}

	if split.PointsUsed > 0 {
		user.Points -= split.PointsUsed
		entry := models.Transaction{
			UserID:        user.ID,
			OrderID:       order.ID,
			TrxType:       models.TrxPurchase,
			Amount:        split.PointsValue.Neg(),
			Points:        -split.PointsUsed,
			BalanceBefore: user.WalletBalance,
			BalanceAfter:  user.WalletBalance,
			Note:          "Points payment for order " + order.Ref,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}

	if err := tx.Save(user).Error; err != nil {
		return err
	}

	order.WalletAmount = split.WalletUsed
	order.PointsAmount = split.PointsValue
	order.GatewayAmount = split.GatewayRemainder
	order.PaymentMethod = split.PaymentMethod
	return tx.Save(order).Error
}

// ReverseTender is the compensating credit: it restores exactly what ApplyTender
// debited and clears the apportionment so the order can be settled again. Used
// when gateway session initiation fails, on a definitive gateway decline, and
// when a stale pending order expires.
func ReverseTender(tx *gorm.DB, user *models.User, order *models.Order, note string) error {
	if order.WalletAmount.IsPositive() {
		before := user.WalletBalance
		user.WalletBalance = user.WalletBalance.Add(order.WalletAmount)
		entry := models.Transaction{
			UserID:        user.ID,
			OrderID:       order.ID,
			TrxType:       models.TrxRefund,
			Amount:        order.WalletAmount,
			BalanceBefore: before,
			BalanceAfter:  user.WalletBalance,
			Note:          note,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}

	if order.PointsAmount.IsPositive() {
		points := helpers.CurrencyToPoints(order.PointsAmount)
		user.Points += points
		entry := models.Transaction{
			UserID:        user.ID,
			OrderID:       order.ID,
			TrxType:       models.TrxRefund,
			Amount:        order.PointsAmount,
			Points:        points,
			BalanceBefore: user.WalletBalance,
			BalanceAfter:  user.WalletBalance,
			Note:          note,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}

	if err := tx.Save(user).Error; err != nil {
		return err
	}

	order.WalletAmount = decimal.Zero
	order.PointsAmount = decimal.Zero
	order.GatewayAmount = decimal.Zero
	order.PaymentMethod = ""
	return tx.Save(order).Error
}
