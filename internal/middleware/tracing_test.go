package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTracedApp() *fiber.App {
	app := fiber.New()
	app.Use(Tracing())
	app.Use(Actor())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"trace_id": GetTraceID(c),
			"actor_id": GetActor(c),
		})
	})
	return app
}

func TestTracing_InboundTraceIDPropagated(t *testing.T) {
	app := setupTracedApp()
	inbound := uuid.New().String()

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Trace-Id", inbound)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, inbound, resp.Header.Get("X-Trace-Id"))
}

func TestTracing_MalformedTraceIDReplaced(t *testing.T) {
	app := setupTracedApp()

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Trace-Id", "not-a-uuid")
	resp, err := app.Test(req)
	require.NoError(t, err)

	echoed := resp.Header.Get("X-Trace-Id")
	assert.NotEqual(t, "not-a-uuid", echoed)
	_, err = uuid.Parse(echoed)
	assert.NoError(t, err)
}

func TestTracing_FreshIDWhenAbsent(t *testing.T) {
	app := setupTracedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	_, err = uuid.Parse(resp.Header.Get("X-Trace-Id"))
	assert.NoError(t, err)
}

func TestActor_HeaderExposedToHandlers(t *testing.T) {
	app := setupTracedApp()

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-User-Id", "line-producer-3")
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		TraceID string `json:"trace_id"`
		ActorID string `json:"actor_id"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "line-producer-3", body.ActorID)
	assert.NotEmpty(t, body.TraceID)
}
