package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDGenerated(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		seen = GetRequestID(c)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, resp.Header.Get("X-Request-Id"))
}

func TestRequestIDHonorsInbound(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "caller-supplied-id")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "caller-supplied-id", resp.Header.Get("X-Request-Id"))
}
