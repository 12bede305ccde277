package health

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handlers struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// GET /health — liveness plus dependency status.
func (h *Handlers) Health(c *fiber.Ctx) error {
	deps := fiber.Map{}
	status := fiber.StatusOK

	dbStatus := "disconnected"
	if h.DB != nil {
		if sqlDB, err := h.DB.DB(); err == nil && sqlDB.Ping() == nil {
			dbStatus = "connected"
		}
	}
	if dbStatus != "connected" {
		status = fiber.StatusServiceUnavailable
	}
	deps["database"] = dbStatus

	if h.Redis != nil {
		redisStatus := "connected"
		if err := h.Redis.Ping(c.Context()).Err(); err != nil {
			redisStatus = "disconnected"
			status = fiber.StatusServiceUnavailable
		}
		deps["redis"] = redisStatus
	}

	return c.Status(status).JSON(fiber.Map{
		"status":       statusWord(status),
		"dependencies": deps,
	})
}

func statusWord(status int) string {
	if status == fiber.StatusOK {
		return "ok"
	}
	return "degraded"
}
