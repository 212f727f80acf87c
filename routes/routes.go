package routes

import (
	"riches/controllers/callback/payment"
	"riches/controllers/games"
	"riches/controllers/items"
	"riches/controllers/orders"
	"riches/controllers/user"
	"riches/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	app.Get("/items", items.ListItemsHandler)
	app.Post("/user/register", user.RegisterUser)

	// gateway callback, no user auth
	app.Post("/payments/webhook", payment.WebhookHandler)

	userroutes := app.Group("/user", middlewares.UserAuthMiddleware)
	userroutes.Post("/balance", user.CheckUserBalance)
	userroutes.Post("/deposit", user.DepositHandler)
	userroutes.Post("/withdraw", user.WithdrawHandler)

	orderroutes := app.Group("/orders", middlewares.UserAuthMiddleware)
	orderroutes.Post("/", orders.CreateOrderHandler)
	orderroutes.Get("/:ref", orders.GetOrderHandler)
	orderroutes.Post("/:ref/settle", orders.SettleOrderHandler)

	gameroutes := app.Group("/games", middlewares.UserAuthMiddleware)
	gameroutes.Post("/spin/:ref", games.SpinHandler)
	gameroutes.Post("/scratch/:ref", games.ScratchHandler)
	gameroutes.Post("/scratch/:ref/reveal-all", games.RevealAllHandler)
}
