package auth

import "github.com/gofiber/fiber/v2"

// HeaderName is the header carrying the API key.
const HeaderName = "X-Api-Key"

// New returns a middleware enforcing the configured API key.
// An empty key disables authentication entirely (local use).
func New(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey == "" {
			return c.Next()
		}
		if c.Get(HeaderName) != apiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing api key",
			})
		}
		return c.Next()
	}
}
