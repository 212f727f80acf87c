package user

import (
	"riches/database"
	"riches/helpers"
	"riches/models"
	"riches/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// DepositHandler starts a gateway-funded wallet top-up. The credit itself is
// posted by the reconciler once the gateway confirms.
func DepositHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var req DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if !req.Amount.IsPositive() {
		return helpers.JSONError(c, "INVALID_AMOUNT")
	}

	session, err := services.PayGateway.CreateSession(req.Amount, services.SessionMeta{
		UserCode:    user.UserCode,
		Description: "Wallet top-up",
	})
	if err != nil {
		return helpers.JSONError(c, "GATEWAY_UNAVAILABLE")
	}

	payment := models.PendingPayment{
		UserID: user.ID,
		JobRef: session.JobRef,
		Amount: req.Amount,
		Status: models.PaymentPending,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_RECORD_PAYMENT")
	}

	return helpers.JSONSuccess(c, "Deposit session created", fiber.Map{
		"redirect_url": session.HostedURL,
		"job_ref":      session.JobRef,
	})
}
