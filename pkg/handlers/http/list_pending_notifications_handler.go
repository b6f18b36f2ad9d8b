package http

import (
	"github.com/NeuralTrust/TakeALook/pkg/domain/notification"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listPendingNotificationsHandler struct {
	logger *logrus.Logger
	repo   notification.Repository
}

func NewListPendingNotificationsHandler(logger *logrus.Logger, repo notification.Repository) Handler {
	return &listPendingNotificationsHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary      Pending notifications
// @Description  Notifications not yet marked as sent, oldest first
// @Tags         Notifications
// @Produce      json
// @Success      200 {array} notification.Notification "Pending notifications"
// @Router       /api/v1/notifications/pending [get]
func (h *listPendingNotificationsHandler) Handle(c *fiber.Ctx) error {
	pending, err := h.repo.ListPending(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to list pending notifications")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}
	if pending == nil {
		pending = []notification.Notification{}
	}
	return c.Status(fiber.StatusOK).JSON(pending)
}
