package http

import (
	domain "github.com/NeuralTrust/TakeALook/pkg/domain/errors"
	"github.com/NeuralTrust/TakeALook/pkg/domain/notification"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type markNotificationSentHandler struct {
	logger *logrus.Logger
	repo   notification.Repository
}

func NewMarkNotificationSentHandler(logger *logrus.Logger, repo notification.Repository) Handler {
	return &markNotificationSentHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary      Mark a notification as sent
// @Tags         Notifications
// @Param        Authorization header string true "Bearer admin token"
// @Param        id path string true "Notification ID"
// @Produce      json
// @Success      200 {object} notification.Notification "Updated notification"
// @Failure      404 {object} map[string]interface{} "Notification not found"
// @Router       /api/v1/notifications/{id}/sent [post]
func (h *markNotificationSentHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification ID"})
	}

	n, err := h.repo.MarkSent(c.Context(), id)
	if err != nil {
		if domain.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
		}
		h.logger.WithError(err).Error("failed to mark notification as sent")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notification"})
	}
	return c.Status(fiber.StatusOK).JSON(n)
}
