package syncjobs

import (
	"recordshop-backend/internal/discogs"
	"recordshop-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *discogs.SyncService
}

// POST /api/sync — run a full inventory sync and return its stats.
func (h *Handlers) TriggerSync(c *fiber.Ctx) error {
	stats, err := h.Service.SyncAll(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadGateway)
	}
	return response.Success(c, "Sync completed", stats)
}

// GET /api/sync/status — the last recorded run, 404 when none has happened.
func (h *Handlers) SyncStatus(c *fiber.Ctx) error {
	stats, err := h.Service.LastStats(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	if stats == nil {
		return response.Error(c, "No sync has been recorded", fiber.StatusNotFound)
	}
	return response.Success(c, "Last sync", stats)
}
