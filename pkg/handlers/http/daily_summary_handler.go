package http

import (
	"errors"

	"github.com/NeuralTrust/TakeALook/pkg/app/report"
	"github.com/NeuralTrust/TakeALook/pkg/infra/telegram"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type dailySummaryHandler struct {
	logger  *logrus.Logger
	reports report.Service
}

func NewDailySummaryHandler(logger *logrus.Logger, reports report.Service) Handler {
	return &dailySummaryHandler{
		logger:  logger,
		reports: reports,
	}
}

// Handle @Summary      Send the daily summary
// @Description  Builds the daily summary and sends it to the Telegram admin chat
// @Tags         Notifications
// @Param        Authorization header string true "Bearer admin token"
// @Produce      json
// @Success      200 {object} telegram.DailySummary "Summary sent"
// @Failure      503 {object} map[string]interface{} "Telegram not configured"
// @Router       /api/v1/alerts/daily-summary [post]
func (h *dailySummaryHandler) Handle(c *fiber.Ctx) error {
	summary, err := h.reports.SendDailySummary(c.Context())
	if err != nil {
		return telegramError(c, h.logger, err, "Failed to send daily summary")
	}
	return c.Status(fiber.StatusOK).JSON(summary)
}

func telegramError(c *fiber.Ctx, logger *logrus.Logger, err error, message string) error {
	if errors.Is(err, telegram.ErrNotConfigured) || errors.Is(err, telegram.ErrNoAdminChat) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithError(err).Error(message)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": message})
}
