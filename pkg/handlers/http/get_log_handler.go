package http

import (
	domain "github.com/NeuralTrust/TakeALook/pkg/domain/errors"
	"github.com/NeuralTrust/TakeALook/pkg/domain/finding"
	"github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	"github.com/NeuralTrust/TakeALook/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type getLogHandler struct {
	logger   *logrus.Logger
	logs     logfile.Repository
	findings finding.Repository
}

func NewGetLogHandler(
	logger *logrus.Logger,
	logs logfile.Repository,
	findings finding.Repository,
) Handler {
	return &getLogHandler{
		logger:   logger,
		logs:     logs,
		findings: findings,
	}
}

// Handle @Summary      Get a log
// @Description  Returns a log and its findings ordered by line
// @Tags         Logs
// @Produce      json
// @Param        log_id path string true "Log ID"
// @Success      200 {object} response.LogDetailOutput "Log with findings"
// @Failure      400 {object} map[string]interface{} "Invalid log ID"
// @Failure      404 {object} map[string]interface{} "Log not found"
// @Router       /api/v1/logs/{log_id} [get]
func (h *getLogHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("log_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid log ID"})
	}

	entity, err := h.logs.GetByID(c.Context(), id)
	if err != nil {
		if domain.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Log not found"})
		}
		h.logger.WithError(err).Error("failed to fetch log")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch log"})
	}

	findings, err := h.findings.ListByLogID(c.Context(), id)
	if err != nil {
		h.logger.WithError(err).Error("failed to fetch findings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch log"})
	}
	if findings == nil {
		findings = []finding.Finding{}
	}

	return c.Status(fiber.StatusOK).JSON(response.LogDetailOutput{
		LogFile: *entity,
		Errors:  findings,
	})
}
