package user

import (
	"errors"

	"riches/database"
	"riches/helpers"
	"riches/models"
	"riches/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func WithdrawHandler(c *fiber.Ctx) error {
	authUser := c.Locals("user").(models.User)

	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if !req.Amount.IsPositive() {
		return helpers.JSONError(c, "INVALID_AMOUNT")
	}

	var balance decimal.Decimal
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, authUser.ID).Error; err != nil {
			return err
		}
		if user.WalletBalance.LessThan(req.Amount) {
			return services.ErrInsufficientFunds
		}

		before := user.WalletBalance
		user.WalletBalance = user.WalletBalance.Sub(req.Amount)
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		balance = user.WalletBalance
		return tx.Create(&models.Transaction{
			UserID:        user.ID,
			TrxType:       models.TrxWithdrawal,
			Amount:        req.Amount.Neg(),
			BalanceBefore: before,
			BalanceAfter:  user.WalletBalance,
			Note:          "Wallet withdrawal",
		}).Error
	})
	if err != nil {
		if errors.Is(err, services.ErrInsufficientFunds) {
			return helpers.JSONError(c, "INSUFFICIENT_FUNDS")
		}
		return helpers.JSONError(c, "WITHDRAWAL_FAILED")
	}

	return helpers.JSONSuccess(c, "Withdrawal recorded", fiber.Map{
		"wallet_balance": balance,
	})
}
