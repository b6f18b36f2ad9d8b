package http

import (
	appLogfile "github.com/NeuralTrust/TakeALook/pkg/app/logfile"
	domain "github.com/NeuralTrust/TakeALook/pkg/domain/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type deleteLogHandler struct {
	logger  *logrus.Logger
	deleter appLogfile.Deleter
}

func NewDeleteLogHandler(logger *logrus.Logger, deleter appLogfile.Deleter) Handler {
	return &deleteLogHandler{
		logger:  logger,
		deleter: deleter,
	}
}

// Handle @Summary      Delete a log
// @Description  Deletes a log and its findings and evicts its fingerprint from every cache
// @Tags         Logs
// @Param        Authorization header string true "Bearer admin token"
// @Param        log_id path string true "Log ID"
// @Success      200 {object} map[string]interface{} "Log deleted"
// @Failure      400 {object} map[string]interface{} "Invalid log ID"
// @Failure      404 {object} map[string]interface{} "Log not found"
// @Router       /api/v1/logs/{log_id} [delete]
func (h *deleteLogHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("log_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid log ID"})
	}

	if err := h.deleter.Delete(c.Context(), id); err != nil {
		if domain.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Log not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete log"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Log deleted"})
}
