package services

import (
	"riches/models"

	"gorm.io/gorm"
)

// RemainingPlays counts how many of an order's purchased plays are unused.
// Call with the order row already locked so consume can trust the count.
func RemainingPlays(tx *gorm.DB, order *models.Order) (int, error) {
	var used int64
	err := tx.Model(&models.PlayUsage{}).
		Where("order_id = ?", order.ID).
		Count(&used).Error
	if err != nil {
		return 0, err
	}
	return order.Quantity - int(used), nil
}

// ConsumePlay records one play against the order, refusing once the purchased
// quantity is exhausted.
func ConsumePlay(tx *gorm.DB, order *models.Order) error {
	remaining, err := RemainingPlays(tx, order)
	if err != nil {
		return err
	}
	if remaining <= 0 {
		return ErrNoPlaysRemaining
	}
	return tx.Create(&models.PlayUsage{OrderID: order.ID, UserID: order.UserID}).Error
}

// ConsumePlays bulk-inserts n usage rows for a reveal-all batch.
func ConsumePlays(tx *gorm.DB, order *models.Order, n int) error {
	usages := make([]models.PlayUsage, 0, n)
	for i := 0; i < n; i++ {
		usages = append(usages, models.PlayUsage{OrderID: order.ID, UserID: order.UserID})
	}
	return tx.Create(&usages).Error
}
