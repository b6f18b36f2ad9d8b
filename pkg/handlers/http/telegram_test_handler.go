package http

import (
	"github.com/NeuralTrust/TakeALook/pkg/handlers/http/request"
	"github.com/NeuralTrust/TakeALook/pkg/infra/telegram"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type telegramTestHandler struct {
	logger   *logrus.Logger
	telegram telegram.Client
}

func NewTelegramTestHandler(logger *logrus.Logger, client telegram.Client) Handler {
	return &telegramTestHandler{
		logger:   logger,
		telegram: client,
	}
}

// Handle @Summary      Send a Telegram test message
// @Tags         Notifications
// @Param        Authorization header string true "Bearer admin token"
// @Accept       json
// @Produce      json
// @Param        request body request.TelegramTestRequest true "Target chat"
// @Success      200 {object} map[string]interface{} "Message sent"
// @Failure      400 {object} map[string]interface{} "Invalid request"
// @Failure      502 {object} map[string]interface{} "Telegram rejected the message"
// @Router       /api/v1/telegram/test [post]
func (h *telegramTestHandler) Handle(c *fiber.Ctx) error {
	var req request.TelegramTestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.telegram.TestConnection(c.Context(), req.ChatID); err != nil {
		return telegramError(c, h.logger, err, "Failed to send test message")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Test message sent"})
}
