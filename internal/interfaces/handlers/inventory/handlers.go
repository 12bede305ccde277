package inventory

import (
	invsvc "recordshop-backend/internal/inventory"
	"recordshop-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *invsvc.Service
}

// GET /api/data — every listing in dictionary form, newest posted first.
func (h *Handlers) GetData(c *fiber.Ctx) error {
	items, err := h.Service.AllItems(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return c.JSON(items)
}

// GET /api/data/:listing_id — one listing or 404.
func (h *Handlers) GetItem(c *fiber.Ctx) error {
	listingID := c.Params("listing_id")
	if listingID == "" {
		return response.Error(c, "listing_id is required", fiber.StatusBadRequest)
	}
	item, err := h.Service.ItemByListingID(c.Context(), listingID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	if item == nil {
		return response.Error(c, "Listing not found", fiber.StatusNotFound)
	}
	return c.JSON(item)
}

// GET /api/search?q=&artist=&genre=&format=&active=
func (h *Handlers) Search(c *fiber.Ctx) error {
	items, err := h.Service.Search(c.Context(), invsvc.SearchFilters{
		Query:      c.Query("q"),
		Artist:     c.Query("artist"),
		Genre:      c.Query("genre"),
		Format:     c.Query("format"),
		ActiveOnly: c.QueryBool("active"),
	})
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return c.JSON(items)
}
