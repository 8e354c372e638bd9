package rayid

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignsRayID(t *testing.T) {
	app := fiber.New()
	app.Use(New())

	var seen string
	app.Get("/ping", func(c *fiber.Ctx) error {
		seen, _ = c.Locals("ray_id").(string)
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)

	rid := resp.Header.Get(Header)
	assert.NotEmpty(t, rid)
	assert.Equal(t, rid, seen)
	_, err = uuid.Parse(rid)
	assert.NoError(t, err)
}

func TestHonorsIncomingRayID(t *testing.T) {
	app := fiber.New()
	app.Use(New())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(Header, "upstream-trace-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "upstream-trace-42", resp.Header.Get(Header))
}
