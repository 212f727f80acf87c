package orders

import (
	"riches/database"
	"riches/helpers"
	"riches/models"
	"riches/services"

	"github.com/gofiber/fiber/v2"
)

func GetOrderHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var order models.Order
	err := database.DB.
		Where("ref = ? AND user_id = ?", c.Params("ref"), user.ID).
		First(&order).Error
	if err != nil {
		return helpers.JSONError(c, "ORDER_NOT_FOUND")
	}

	remaining, err := services.RemainingPlays(database.DB, &order)
	if err != nil {
		return helpers.JSONError(c, "ORDER_LOOKUP_FAILED")
	}

	return helpers.JSONSuccess(c, "Order fetched", fiber.Map{
		"order":           order,
		"remaining_plays": remaining,
	})
}

// SettleOrderHandler lets a returning customer poke a pending order instead of
// waiting for the reconciliation cycle. Completing an already completed order
// just reports the existing outcome.
func SettleOrderHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var order models.Order
	err := database.DB.
		Where("ref = ? AND user_id = ?", c.Params("ref"), user.ID).
		First(&order).Error
	if err != nil {
		return helpers.JSONError(c, "ORDER_NOT_FOUND")
	}

	if order.Status == models.OrderCompleted {
		return helpers.JSONSuccess(c, "Order already completed", fiber.Map{
			"order": order,
		})
	}

	var payment models.PendingPayment
	err = database.DB.
		Where("order_id = ? AND status = ?", order.ID, models.PaymentPending).
		Order("id desc").
		First(&payment).Error
	if err != nil {
		return helpers.JSONError(c, "NO_PENDING_PAYMENT")
	}

	if err := services.SettlePendingPayment(payment.ID); err != nil {
		return helpers.JSONError(c, "SETTLEMENT_RETRYABLE")
	}

	if err := database.DB.First(&order, order.ID).Error; err != nil {
		return helpers.JSONError(c, "ORDER_LOOKUP_FAILED")
	}
	return helpers.JSONSuccess(c, "Order settlement checked", fiber.Map{
		"order": order,
	})
}
