package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// RouteLogger logs one line per request with duration, response status and
// the acting user, keyed by trace id. Money moves through these routes, so
// the actor lands in the log whenever the identity header was present.
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		evt := log.Info().
			Str("trace_id", GetTraceID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Int64("ms", time.Since(start).Milliseconds())
		if actor := GetActor(c); actor != "" {
			evt = evt.Str("actor_id", actor)
		}
		evt.Msg("request handled")
		return err
	}
}
