package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"riches/database"
	"riches/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HandleWebhook processes one gateway notification. The HTTP handler has
// already answered 200; everything here is best-effort and the poll loop is
// the safety net.
func HandleWebhook(jobRef, paymentRef string) {
	var payment models.PendingPayment
	if err := database.DB.Where("job_ref = ?", jobRef).First(&payment).Error; err != nil {
		log.Printf("⚠️  Webhook for unknown job ref %s", jobRef)
		return
	}

	if payment.PaymentRef == "" && paymentRef != "" {
		if err := database.DB.Model(&payment).Update("payment_ref", paymentRef).Error; err != nil {
			log.Printf("❌ Failed to store payment ref %s: %v", paymentRef, err)
			return
		}
		payment.PaymentRef = paymentRef
	}

	if err := SettlePendingPayment(payment.ID); err != nil {
		log.Printf("❌ Webhook settle failed for job %s: %v", jobRef, err)
	}
}

// SettlePendingPayment asks the gateway for the definitive status of one
// pending payment and applies it. Idempotent: completed and failed records are
// terminal, and the ledger's payment_ref guard stops a webhook/poll race from
// double-crediting.
func SettlePendingPayment(paymentID uint) error {
	var payment models.PendingPayment
	if err := database.DB.First(&payment, paymentID).Error; err != nil {
		return err
	}
	if payment.Status != models.PaymentPending {
		return nil
	}

	raw, err := PayGateway.GetStatus(payment.JobRef, payment.PaymentRef)
	if err != nil {
		return fmt.Errorf("gateway status query for job %s: %w", payment.JobRef, err)
	}

	switch NormalizeStatus(raw) {
	case StatusPaid:
		return applyPaid(payment.ID)
	case StatusFailed:
		return applyFailed(payment.ID)
	default:
		// still in flight; the next poll cycle picks it up
		return nil
	}
}

func applyPaid(paymentID uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.PendingPayment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payment, paymentID).Error; err != nil {
			return err
		}
		if payment.Status != models.PaymentPending {
			return nil
		}

		ref := payment.PaymentRef
		if ref == "" {
			ref = payment.JobRef
		}

		// order row before the user row, matching the decline, expiry, and
		// play paths; a reversal sweep racing this settle must not deadlock
		var order *models.Order
		if payment.OrderID != 0 {
			order = &models.Order{}
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(order, payment.OrderID).Error; err != nil {
				return err
			}
		}

		posted, err := PostGatewayCredit(tx, payment.UserID, ref, payment.Amount, payment.OrderID)
		if err != nil {
			return err
		}
		if !posted {
			log.Printf("⚠️  Duplicate settlement for payment ref %s, skipping credit", ref)
		}

		payment.Status = models.PaymentCompleted
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if order == nil {
			return nil
		}
		return completeGatewayOrder(tx, &payment, order)
	})
}

// completeGatewayOrder turns the posted wallet credit into the order's gateway
// leg: the credit is debited straight back out as a purchase entry and the
// order completes. The caller holds the order row lock. A late confirmation
// for an order that already expired or failed leaves the credit in the wallet
// as an ordinary deposit.
func completeGatewayOrder(tx *gorm.DB, payment *models.PendingPayment, order *models.Order) error {
	if order.Status == models.OrderCompleted {
		return nil
	}
	if order.Status != models.OrderPending {
		log.Printf("⚠️  Payment %s confirmed for %s order %s; credit kept as wallet deposit",
			payment.JobRef, order.Status, order.Ref)
		return nil
	}

	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, order.UserID).Error; err != nil {
		return err
	}

	before := user.WalletBalance
	user.WalletBalance = user.WalletBalance.Sub(payment.Amount)
	if user.WalletBalance.IsNegative() {
		return ErrInsufficientFunds
	}
	if err := tx.Save(&user).Error; err != nil {
		return err
	}
	if err := tx.Create(&models.Transaction{
		UserID:        user.ID,
		OrderID:       order.ID,
		TrxType:       models.TrxPurchase,
		Amount:        payment.Amount.Neg(),
		BalanceBefore: before,
		BalanceAfter:  user.WalletBalance,
		Note:          "Gateway payment for order " + order.Ref,
	}).Error; err != nil {
		return err
	}

	return CompleteOrder(tx, &user, order)
}

func applyFailed(paymentID uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.PendingPayment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payment, paymentID).Error; err != nil {
			return err
		}
		if payment.Status != models.PaymentPending {
			return nil
		}

		payment.Status = models.PaymentFailed
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if payment.OrderID == 0 {
			return nil
		}

		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, payment.OrderID).Error; err != nil {
			return err
		}
		if order.Status != models.OrderPending {
			return nil
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, order.UserID).Error; err != nil {
			return err
		}

		order.Status = models.OrderFailed
		return ReverseTender(tx, &user, &order, "Gateway payment declined for order "+order.Ref)
	})
}

// PollPendingPayments is the reconciliation safety net for missed or duplicated
// webhooks. It scans pending payments older than the grace period and runs the
// same settle logic as the webhook path.
func PollPendingPayments(grace time.Duration) error {
	cutoff := time.Now().Add(-grace)

	var payments []models.PendingPayment
	err := database.DB.
		Where("status = ? AND created_at < ?", models.PaymentPending, cutoff).
		Order("id").
		Find(&payments).Error
	if err != nil {
		return err
	}

	var failed int
	for _, payment := range payments {
		if err := SettlePendingPayment(payment.ID); err != nil {
			log.Printf("❌ Reconcile failed for job %s: %v", payment.JobRef, err)
			failed++
		}
	}
	if failed > 0 {
		return errors.New("reconciliation finished with errors")
	}
	return nil
}
