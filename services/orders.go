package services

import (
	"errors"
	"log"
	"os"
	"time"

	"riches/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompleteOrder transitions an order to completed exactly once and issues
// whatever the order entitles the buyer to. Safe to call again on an already
// completed order. The caller holds the order row lock.
func CompleteOrder(tx *gorm.DB, user *models.User, order *models.Order) error {
	if order.Status == models.OrderCompleted {
		return nil
	}

	now := time.Now()
	order.Status = models.OrderCompleted
	order.CompletedAt = &now
	if err := tx.Save(order).Error; err != nil {
		return err
	}

	if order.Kind == models.KindCompetition {
		if err := issueTickets(tx, order); err != nil {
			return err
		}
	}

	return grantReferralBonus(tx, user, order)
}

func issueTickets(tx *gorm.DB, order *models.Order) error {
	var last models.Ticket
	next := 1
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item_id = ?", order.ItemID).
		Order("number desc").
		First(&last).Error
	if err == nil {
		next = last.Number + 1
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	tickets := make([]models.Ticket, 0, order.Quantity)
	for i := 0; i < order.Quantity; i++ {
		tickets = append(tickets, models.Ticket{
			OrderID: order.ID,
			UserID:  order.UserID,
			ItemID:  order.ItemID,
			Number:  next + i,
		})
	}
	return tx.Create(&tickets).Error
}

// grantReferralBonus pays out once, on a referred user's first completed order.
// The existing referral transaction row is the once-only guard.
func grantReferralBonus(tx *gorm.DB, user *models.User, order *models.Order) error {
	if user.ReferredBy == "" {
		return nil
	}

	var prior int64
	if err := tx.Model(&models.Transaction{}).
		Where("user_id = ? AND trx_type = ?", user.ID, models.TrxReferral).
		Count(&prior).Error; err != nil {
		return err
	}
	if prior > 0 {
		return nil
	}

	bonus := referralBonus()
	if !bonus.IsPositive() {
		return nil
	}

	var referrer models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_code = ? AND is_active = true", user.ReferredBy).
		First(&referrer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️  Referrer %s not found for user %s", user.ReferredBy, user.UserCode)
			return nil
		}
		return err
	}

	before := user.WalletBalance
	user.WalletBalance = user.WalletBalance.Add(bonus)
	if err := tx.Create(&models.Transaction{
		UserID:        user.ID,
		OrderID:       order.ID,
		TrxType:       models.TrxReferral,
		Amount:        bonus,
		BalanceBefore: before,
		BalanceAfter:  user.WalletBalance,
		Note:          "Referral welcome bonus",
	}).Error; err != nil {
		return err
	}
	if err := tx.Save(user).Error; err != nil {
		return err
	}

	refBefore := referrer.WalletBalance
	referrer.WalletBalance = referrer.WalletBalance.Add(bonus)
	if err := tx.Create(&models.Transaction{
		UserID:        referrer.ID,
		OrderID:       order.ID,
		TrxType:       models.TrxReferralBonus,
		Amount:        bonus,
		BalanceBefore: refBefore,
		BalanceAfter:  referrer.WalletBalance,
		Note:          "Referral bonus for " + user.UserCode,
	}).Error; err != nil {
		return err
	}
	return tx.Save(&referrer).Error
}

func referralBonus() decimal.Decimal {
	raw := os.Getenv("REFERRAL_BONUS_GBP")
	if raw == "" {
		return decimal.New(1, 0)
	}
	bonus, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("⚠️  Invalid value for REFERRAL_BONUS_GBP: %s", raw)
		return decimal.New(1, 0)
	}
	return bonus
}
