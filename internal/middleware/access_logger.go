package middleware

import (
	"time"

	"recordshop-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const maxHeaderLen = 500

// AccessLogger writes one access_logs row per handled request, after the
// response is produced. A failed insert is logged and never fails the request.
func AccessLogger(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		elapsed := float64(time.Since(start).Microseconds()) / 1000.0
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		row := models.AccessLog{
			Timestamp:      start.UTC(),
			Method:         c.Method(),
			Path:           c.Path(),
			QueryString:    optional(string(c.Request().URI().QueryString())),
			FullURL:        optional(c.OriginalURL()),
			IPAddress:      optional(c.IP()),
			UserAgent:      optional(truncate(c.Get(fiber.HeaderUserAgent), maxHeaderLen)),
			Referrer:       optional(truncate(c.Get(fiber.HeaderReferer), maxHeaderLen)),
			StatusCode:     &status,
			ResponseTimeMs: &elapsed,
			Endpoint:       optional(c.Route().Name),
		}
		if dbErr := db.Create(&row).Error; dbErr != nil {
			log.Error().Err(dbErr).Str("path", row.Path).Msg("Error logging access")
		}

		return err
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
