package user

import (
	"riches/helpers"
	"riches/models"

	"github.com/gofiber/fiber/v2"
)

func CheckUserBalance(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	return helpers.JSONSuccess(c, "Balance fetched", fiber.Map{
		"user_code":      user.UserCode,
		"wallet_balance": user.WalletBalance,
		"points":         user.Points,
	})
}
