package user

import (
	"strings"

	"riches/database"
	"riches/helpers"
	"riches/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	UserCode   string `json:"user_code"`
	ReferredBy string `json:"referred_by"`
}

func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	code := strings.TrimSpace(req.UserCode)
	if code == "" {
		code = uuid.NewString()[:8]
	}

	user := models.User{
		UserCode:      code,
		WalletBalance: decimal.Zero,
		ReferredBy:    strings.TrimSpace(req.ReferredBy),
		IsActive:      true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return helpers.JSONError(c, "USER_CODE_TAKEN")
	}

	return helpers.JSONSuccess(c, "User registered", fiber.Map{
		"user_code": user.UserCode,
	})
}
