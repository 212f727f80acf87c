package helpers

import (
	"github.com/gofiber/fiber/v2"
)

func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

func JSONTooFrequent(c *fiber.Ctx, retryAfter float64) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"success":     false,
		"message":     "TOO_FREQUENT",
		"retry_after": retryAfter,
		"data":        nil,
	})
}
