package tasks

import (
	"log"
	"os"
	"strconv"
	"time"

	"riches/database"
	"riches/models"
	"riches/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExpireStaleOrders fails pending orders nobody finished paying for and hands
// their internal tenders back. A gateway confirmation arriving after expiry is
// kept as a plain wallet deposit by the reconciler.
func ExpireStaleOrders() {
	cutoff := time.Now().Add(-orderTTL())

	var orders []models.Order
	err := database.DB.
		Where("status = ? AND created_at < ?", models.OrderPending, cutoff).
		Order("id").
		Find(&orders).Error
	if err != nil {
		log.Println("❌ Failed to list stale orders:", err)
		return
	}

	expired := 0
	for _, stale := range orders {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&order, stale.ID).Error; err != nil {
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

			order.Status = models.OrderExpired
			return services.ReverseTender(tx, &user, &order, "Order "+order.Ref+" expired")
		})
		if err != nil {
			log.Printf("❌ Failed to expire order %s: %v", stale.Ref, err)
			continue
		}
		expired++
	}

	if expired > 0 {
		log.Printf("✅ Expired %d stale pending orders", expired)
	}
}

func orderTTL() time.Duration {
	raw := os.Getenv("ORDER_TTL_HOURS")
	if raw == "" {
		return 24 * time.Hour
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		log.Printf("⚠️  Invalid value for ORDER_TTL_HOURS: %s", raw)
		return 24 * time.Hour
	}
	return time.Duration(hours) * time.Hour
}
