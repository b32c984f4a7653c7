package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler returns a basic liveness check. The timestamp is epoch
// milliseconds and strictly increasing across calls, even when two land
// in the same millisecond.
func HealthHandler() fiber.Handler {
	var mu sync.Mutex
	var last int64

	return func(c *fiber.Ctx) error {
		mu.Lock()
		now := time.Now().UnixMilli()
		if now <= last {
			now = last + 1
		}
		last = now
		mu.Unlock()

		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": now,
		})
	}
}

// ReadyHandler reports whether the service can fully serve lookups.
// Missing Imagga credentials make it not ready (the lookup endpoint
// rejects requests without them); a missing completion key is reported
// but does not flip readiness, since lookups still succeed with a
// degraded explanation.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		checks := make(map[string]string)
		allOK := true

		if deps.VisionConfigured {
			checks["imagga"] = "ok"
		} else {
			checks["imagga"] = "credentials missing"
			allOK = false
		}

		if deps.LLMConfigured {
			checks["openai"] = "ok"
		} else {
			checks["openai"] = "api key missing (degraded explanations)"
		}

		// The catalog is unauthenticated; nothing to verify ahead of time.
		checks["asf"] = "ok"

		status := "ready"
		code := 200
		if !allOK {
			status = "not ready"
			code = 503
		}

		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"checks": checks,
		})
	}
}
