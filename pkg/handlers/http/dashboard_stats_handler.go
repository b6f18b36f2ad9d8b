package http

import (
	"github.com/NeuralTrust/TakeALook/pkg/app/report"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type dashboardStatsHandler struct {
	logger  *logrus.Logger
	reports report.Service
}

func NewDashboardStatsHandler(logger *logrus.Logger, reports report.Service) Handler {
	return &dashboardStatsHandler{
		logger:  logger,
		reports: reports,
	}
}

// Handle @Summary      Dashboard statistics
// @Description  File totals, success rate, finding distributions and the seven day trend
// @Tags         Reports
// @Produce      json
// @Success      200 {object} report.Dashboard "Statistics"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /api/v1/dashboard/stats [get]
func (h *dashboardStatsHandler) Handle(c *fiber.Ctx) error {
	stats, err := h.reports.Dashboard(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to fetch dashboard stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
