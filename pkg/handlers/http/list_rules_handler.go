package http

import (
	"github.com/NeuralTrust/TakeALook/pkg/handlers/http/response"
	"github.com/NeuralTrust/TakeALook/pkg/rules"
	"github.com/gofiber/fiber/v2"
)

type listRulesHandler struct {
	output response.ListRulesOutput
}

func NewListRulesHandler() Handler {
	return &listRulesHandler{output: response.NewListRulesOutput(rules.All())}
}

// Handle @Summary      List classification rules
// @Description  Returns the rule catalogue in evaluation order
// @Tags         Rules
// @Produce      json
// @Success      200 {object} response.ListRulesOutput "Rule catalogue"
// @Router       /api/v1/rules [get]
func (h *listRulesHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.output)
}
