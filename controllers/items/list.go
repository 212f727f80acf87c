package items

import (
	"riches/database"
	"riches/helpers"
	"riches/models"

	"github.com/gofiber/fiber/v2"
)

func ListItemsHandler(c *fiber.Ctx) error {
	var items []models.Item
	err := database.DB.Where("is_active = true").Order("id").Find(&items).Error
	if err != nil {
		return helpers.JSONError(c, "ITEMS_LOOKUP_FAILED")
	}

	return helpers.JSONSuccess(c, "Items fetched", fiber.Map{
		"items": items,
	})
}
