package labelinfo

import (
	"errors"

	"recordshop-backend/internal/labels"
	"recordshop-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *labels.Service
}

// GET /api/labels/:label_name — cached or freshly generated overview.
func (h *Handlers) GetOverview(c *fiber.Ctx) error {
	labelName := c.Params("label_name")
	if labelName == "" {
		return response.Error(c, "label_name is required", fiber.StatusBadRequest)
	}
	info, err := h.Service.GetOrGenerate(c.Context(), labelName)
	if err != nil {
		if errors.Is(err, labels.ErrGeneratorUnavailable) {
			return response.Error(c, "Label overviews are not available", fiber.StatusServiceUnavailable)
		}
		return response.Error(c, "Failed to generate overview", fiber.StatusBadGateway)
	}
	return response.Success(c, "Label overview", info.ToDict())
}
