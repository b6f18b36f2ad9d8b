package http

import (
	"net/url"

	"github.com/NeuralTrust/TakeALook/pkg/handlers/http/response"
	"github.com/NeuralTrust/TakeALook/pkg/rules"
	"github.com/gofiber/fiber/v2"
)

type getSuggestionsHandler struct{}

func NewGetSuggestionsHandler() Handler {
	return &getSuggestionsHandler{}
}

// Handle @Summary      Remediation suggestions
// @Description  Returns remediation suggestions for a finding category, with the rule title and severity when the category is known
// @Tags         Rules
// @Produce      json
// @Param        category path string true "Finding category"
// @Success      200 {object} response.SuggestionsOutput "Suggestions"
// @Router       /api/v1/suggestions/{category} [get]
func (h *getSuggestionsHandler) Handle(c *fiber.Ctx) error {
	category, err := url.PathUnescape(c.Params("category"))
	if err != nil {
		category = c.Params("category")
	}
	out := response.SuggestionsOutput{
		Category:    category,
		Suggestions: rules.SuggestionsFor(category),
	}
	if r, ok := rules.Lookup(category); ok {
		out.Title = r.Title
		out.Severity = r.Severity
	}
	return c.Status(fiber.StatusOK).JSON(out)
}
