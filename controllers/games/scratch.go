package games

import (
	"encoding/json"
	"math/rand"
	"time"

	"riches/database"
	"riches/helpers"
	"riches/models"
	"riches/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScratchHandler plays one scratch card. The prize draw decides the outcome
// first; the tile grid is rendered afterwards to match it, so the visuals can
// never leak the odds.
func ScratchHandler(c *fiber.Ctx) error {
	authUser := c.Locals("user").(models.User)

	order, errMsg := loadScratchOrder(c, authUser)
	if errMsg != "" {
		return helpers.JSONError(c, errMsg)
	}

	if ok, wait := services.CheckPlayCooldown(authUser.ID, order.ID, services.PlayCooldown); !ok {
		return helpers.JSONTooFrequent(c, wait.Seconds())
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var card models.ScratchCard
	var prize *models.Prize
	var remaining int
	err := database.DB.Transaction(func(tx *gorm.DB) error {
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

		win, won, err := services.AwardPlay(tx, &user, &order, rng)
		if err != nil {
			return err
		}
		prize = won

		symbols, err := activeSymbols(tx)
		if err != nil {
			return err
		}
		card, err = buildCard(tx, &order, win, symbols, rng)
		if err != nil {
			return err
		}

		remaining, err = services.RemainingPlays(tx, &order)
		return err
	})
	if err != nil {
		return playError(c, err)
	}

	return helpers.JSONSuccess(c, "Scratch card played", fiber.Map{
		"card": card,
		"prize": fiber.Map{
			"label":        prize.Label,
			"reward_type":  prize.RewardType,
			"reward_value": prize.RewardValue,
		},
		"remaining_plays": remaining,
	})
}

// RevealAllHandler consumes every remaining play on the order in one
// transaction, with caps tracked in memory across the batch and a single
// balance update at the end.
func RevealAllHandler(c *fiber.Ctx) error {
	authUser := c.Locals("user").(models.User)

	order, errMsg := loadScratchOrder(c, authUser)
	if errMsg != "" {
		return helpers.JSONError(c, errMsg)
	}

	if ok, wait := services.CheckPlayCooldown(authUser.ID, order.ID, services.PlayCooldown); !ok {
		return helpers.JSONTooFrequent(c, wait.Seconds())
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var cards []models.ScratchCard
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, order.ID).Error; err != nil {
			return err
		}
		if order.Status != models.OrderCompleted {
			return services.ErrNoPlaysRemaining
		}

		remaining, err := services.RemainingPlays(tx, &order)
		if err != nil {
			return err
		}
		if remaining <= 0 {
			return services.ErrNoPlaysRemaining
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, authUser.ID).Error; err != nil {
			return err
		}

		wins, _, err := services.AwardBatch(tx, &user, &order, remaining, rng)
		if err != nil {
			return err
		}
		if err := services.ConsumePlays(tx, &order, remaining); err != nil {
			return err
		}

		symbols, err := activeSymbols(tx)
		if err != nil {
			return err
		}
		for i := range wins {
			card, err := buildCard(tx, &order, &wins[i], symbols, rng)
			if err != nil {
				return err
			}
			cards = append(cards, card)
		}
		return nil
	})
	if err != nil {
		return playError(c, err)
	}

	return helpers.JSONSuccess(c, "All cards revealed", fiber.Map{
		"cards":           cards,
		"remaining_plays": 0,
	})
}

func loadScratchOrder(c *fiber.Ctx, user models.User) (models.Order, string) {
	var order models.Order
	err := database.DB.
		Where("ref = ? AND user_id = ? AND kind = ?", c.Params("ref"), user.ID, models.KindScratch).
		First(&order).Error
	if err != nil {
		return order, "ORDER_NOT_FOUND"
	}
	if order.Status != models.OrderCompleted {
		return order, "ORDER_NOT_COMPLETED"
	}
	return order, ""
}

func activeSymbols(tx *gorm.DB) ([]models.ScratchSymbol, error) {
	var symbols []models.ScratchSymbol
	err := tx.Where("is_active = true AND weight > 0").Order("id").Find(&symbols).Error
	return symbols, err
}

func buildCard(tx *gorm.DB, order *models.Order, win *models.PrizeWin, symbols []models.ScratchSymbol, rng *rand.Rand) (models.ScratchCard, error) {
	outcome := services.OutcomeWin
	if win.RewardType == models.RewardLose || win.RewardType == models.RewardTryAgain {
		outcome = services.OutcomeLose
	}

	winner := ""
	if outcome == services.OutcomeWin {
		symbol, err := services.PickSymbol(symbols, rng)
		if err != nil {
			return models.ScratchCard{}, err
		}
		winner = symbol.Code
	}

	grid, err := services.BuildLayout(outcome, winner, symbols, rng)
	if err != nil {
		return models.ScratchCard{}, err
	}

	raw, err := json.Marshal(grid)
	if err != nil {
		return models.ScratchCard{}, err
	}

	card := models.ScratchCard{
		OrderID:    order.ID,
		UserID:     order.UserID,
		PrizeWinID: win.ID,
		Outcome:    outcome,
		Grid:       datatypes.JSON(raw),
	}
	return card, tx.Create(&card).Error
}
