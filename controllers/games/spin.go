package games

import (
	"errors"
	"math/rand"
	"time"

	"riches/database"
	"riches/helpers"
	"riches/models"
	"riches/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SpinHandler plays one spin of the wheel against a completed order. Usage
// check, prize draw, and reward posting all commit atomically.
func SpinHandler(c *fiber.Ctx) error {
	authUser := c.Locals("user").(models.User)

	var order models.Order
	err := database.DB.
		Where("ref = ? AND user_id = ? AND kind = ?", c.Params("ref"), authUser.ID, models.KindSpin).
		First(&order).Error
	if err != nil {
		return helpers.JSONError(c, "ORDER_NOT_FOUND")
	}
	if order.Status != models.OrderCompleted {
		return helpers.JSONError(c, "ORDER_NOT_COMPLETED")
	}

	if ok, wait := services.CheckPlayCooldown(authUser.ID, order.ID, services.PlayCooldown); !ok {
		return helpers.JSONTooFrequent(c, wait.Seconds())
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var prize *models.Prize
	var remaining int
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, order.ID).Error; err != nil {
			return err
		}
		if order.Status != models.OrderCompleted {
			return services.ErrNoPlaysRemaining
		}
		if err := services.ConsumePlay(tx, &order); err != nil {
			return err
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, authUser.ID).Error; err != nil {
			return err
		}

		_, won, err := services.AwardPlay(tx, &user, &order, rng)
		if err != nil {
			return err
		}
		prize = won

		remaining, err = services.RemainingPlays(tx, &order)
		return err
	})
	if err != nil {
		return playError(c, err)
	}

	return helpers.JSONSuccess(c, "Spin played", fiber.Map{
		"prize": fiber.Map{
			"label":        prize.Label,
			"reward_type":  prize.RewardType,
			"reward_value": prize.RewardValue,
		},
		"remaining_plays": remaining,
	})
}

func playError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNoPlaysRemaining):
		return helpers.JSONError(c, "NO_PLAYS_REMAINING")
	case errors.Is(err, services.ErrNoPrizesAvailable):
		return helpers.JSONError(c, "NO_PRIZES_AVAILABLE")
	case errors.Is(err, services.ErrInvalidPrizeConfig):
		return helpers.JSONError(c, "PRIZE_CONFIG_ERROR")
	case errors.Is(err, services.ErrInsufficientSymbols):
		return helpers.JSONError(c, "SYMBOL_POOL_TOO_SMALL")
	default:
		return helpers.JSONError(c, "PLAY_FAILED")
	}
}
