package middlewares

import (
	"riches/database"
	"riches/helpers"
	"riches/models"

	"github.com/gofiber/fiber/v2"
)

func UserAuthMiddleware(c *fiber.Ctx) error {
	userCode := c.Get("X-User-Code")

	if userCode == "" {
		return helpers.JSONError(c, "USER_CODE_REQUIRED")
	}

	var user models.User
	if err := database.DB.Where("user_code = ? AND is_active = true", userCode).First(&user).Error; err != nil {
		return helpers.JSONError(c, "INVALID_USER")
	}

	c.Locals("user", user)
	return c.Next()
}
