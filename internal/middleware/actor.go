package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const actorLocal = "actor_id"
const actorHeader = "X-User-Id"

// Actor copies the caller's identity header into Locals. Identity is supplied
// by an external auth layer; the store treats it as an opaque string and
// performs no authorization checks.
func Actor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(actorLocal, c.Get(actorHeader))
		return c.Next()
	}
}

// GetActor returns the opaque actor id for the request ("" when absent).
func GetActor(c *fiber.Ctx) string {
	if id, ok := c.Locals(actorLocal).(string); ok {
		return id
	}
	return ""
}
