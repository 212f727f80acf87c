package payment

import (
	"strings"

	"riches/services"

	"github.com/gofiber/fiber/v2"
)

type WebhookRequest struct {
	JobRef     string `json:"job_ref"`
	PaymentRef string `json:"payment_ref"`
}

// WebhookHandler acknowledges the gateway immediately and settles in the
// background. A slow or failed settle never causes the gateway to retry; the
// poll loop reconciles anything this path drops.
func WebhookHandler(c *fiber.Ctx) error {
	var req WebhookRequest
	if err := c.BodyParser(&req); err == nil {
		jobRef := strings.TrimSpace(req.JobRef)
		if jobRef != "" {
			go services.HandleWebhook(jobRef, strings.TrimSpace(req.PaymentRef))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"received": true,
	})
}
