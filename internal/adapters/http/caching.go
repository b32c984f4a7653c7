package http

import (
	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses when the
// handler did not set one itself.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != "GET" {
			return err
		}
		if existing := c.GetRespHeader("Cache-Control"); existing != "" {
			return err
		}

		switch c.Path() {
		case "/health", "/ready":
			// Never cache: /health carries a strictly increasing timestamp.
			c.Set("Cache-Control", "no-store")
		case "/metrics":
			c.Set("Cache-Control", "no-cache")
		}

		return err
	}
}
