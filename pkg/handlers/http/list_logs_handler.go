package http

import (
	"github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	"github.com/NeuralTrust/TakeALook/pkg/handlers/http/request"
	"github.com/NeuralTrust/TakeALook/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listLogsHandler struct {
	logger *logrus.Logger
	repo   logfile.Repository
}

func NewListLogsHandler(logger *logrus.Logger, repo logfile.Repository) Handler {
	return &listLogsHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary      List logs
// @Description  Lists uploaded logs, newest first, with their finding counts
// @Tags         Logs
// @Produce      json
// @Param        page  query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 50, max 100)"
// @Success      200 {object} response.ListLogsOutput "Page of logs"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /api/v1/logs [get]
func (h *listLogsHandler) Handle(c *fiber.Ctx) error {
	req := request.NewListLogsRequest(c.Query("page"), c.Query("limit"))

	logs, err := h.repo.List(c.Context(), req.Offset(), req.Limit)
	if err != nil {
		h.logger.WithError(err).Error("failed to list logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch logs"})
	}
	if logs == nil {
		logs = []logfile.WithErrorCount{}
	}

	return c.Status(fiber.StatusOK).JSON(response.ListLogsOutput{
		Logs:  logs,
		Count: len(logs),
		Page:  req.Page,
		Limit: req.Limit,
	})
}
