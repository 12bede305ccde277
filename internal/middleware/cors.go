package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig holds the browser origins allowed to call the API. An empty
// list, or a "*" entry, allows any origin.
type CORSConfig struct {
	AllowedOrigins []string
}

// CORS sets the Access-Control headers for browser clients and answers
// preflight requests. Requests without an Origin header pass through
// untouched.
func CORS(cfg CORSConfig) fiber.Handler {
	allowAll := len(cfg.AllowedOrigins) == 0
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[strings.ToLower(origin)] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}

		if _, ok := allowed[strings.ToLower(origin)]; !allowAll && !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status": "error",
				"error": fiber.Map{
					"message":    "Origin not allowed",
					"statusCode": fiber.StatusForbidden,
				},
			})
		}

		c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		c.Set(fiber.HeaderVary, fiber.HeaderOrigin)
		if c.Method() == fiber.MethodOptions {
			c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
			c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type")
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
