package orders

import (
	"errors"
	"log"

	"riches/database"
	"riches/helpers"
	"riches/models"
	"riches/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateOrderRequest struct {
	ItemID    uint `json:"item_id"`
	Quantity  int  `json:"quantity"`
	UseWallet bool `json:"use_wallet"`
	UsePoints bool `json:"use_points"`
}

// CreateOrderHandler runs the purchase workflow: split tenders, debit the
// internal legs, and either complete synchronously or hand the remainder to
// the hosted gateway and let the reconciler finish later.
func CreateOrderHandler(c *fiber.Ctx) error {
	authUser := c.Locals("user").(models.User)

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Quantity < 1 {
		return helpers.JSONError(c, "INVALID_QUANTITY")
	}

	var item models.Item
	if err := database.DB.Where("id = ? AND is_active = true", req.ItemID).First(&item).Error; err != nil {
		return helpers.JSONError(c, "ITEM_NOT_FOUND")
	}
	if req.Quantity > item.MaxPerOrder {
		return helpers.JSONError(c, "QUANTITY_EXCEEDS_LIMIT")
	}

	total := item.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))

	var order models.Order
	var split services.Split
	completed := false

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, authUser.ID).Error; err != nil {
			return err
		}

		split = services.SplitTender(total, user.WalletBalance, user.Points, req.UseWallet, req.UsePoints)

		order = models.Order{
			Ref:         uuid.NewString(),
			UserID:      user.ID,
			ItemID:      item.ID,
			Kind:        item.Kind,
			Quantity:    req.Quantity,
			TotalAmount: total,
			Status:      models.OrderPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := services.ApplyTender(tx, &user, &order, split); err != nil {
			return err
		}

		if !split.GatewayRemainder.IsPositive() {
			completed = true
			return services.CompleteOrder(tx, &user, &order)
		}
		return nil
	})
	if err != nil {
		return helpers.JSONError(c, "ORDER_FAILED")
	}

	if completed {
		return helpers.JSONSuccess(c, "Order completed", fiber.Map{
			"order": order,
		})
	}

	session, err := services.PayGateway.CreateSession(split.GatewayRemainder, services.SessionMeta{
		UserCode:    authUser.UserCode,
		OrderRef:    order.Ref,
		Description: item.Name,
	})
	if err != nil {
		log.Printf("❌ Gateway session failed for order %s: %v", order.Ref, err)
		reverseOrder(order.ID, "Gateway initiation failed for order "+order.Ref)
		return helpers.JSONError(c, "GATEWAY_UNAVAILABLE")
	}

	payment := models.PendingPayment{
		UserID:  authUser.ID,
		OrderID: order.ID,
		JobRef:  session.JobRef,
		Amount:  split.GatewayRemainder,
		Status:  models.PaymentPending,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		log.Printf("❌ Failed to record pending payment for order %s: %v", order.Ref, err)
		reverseOrder(order.ID, "Gateway initiation failed for order "+order.Ref)
		return helpers.JSONError(c, "FAILED_TO_RECORD_PAYMENT")
	}

	return helpers.JSONSuccess(c, "Order awaiting gateway payment", fiber.Map{
		"order":        order,
		"redirect_url": session.HostedURL,
		"job_ref":      session.JobRef,
	})
}

// reverseOrder undoes the internal debits of a pending order after the
// gateway leg could not even be started. The order stays pending for a retry.
func reverseOrder(orderID uint, note string) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderID).Error; err != nil {
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
		return services.ReverseTender(tx, &user, &order, note)
	})
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("❌ Compensating reversal failed for order %d: %v", orderID, err)
	}
}
