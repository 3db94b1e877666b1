package router

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-booking-api/config"
)

func newTestApp() *fiber.App {
	cfg := &config.Config{
		ServiceName:      "event-booking-api",
		FrontendURL:      "http://localhost:3000/",
		CORSOriginSuffix: ".vercel.app",
	}
	app := NewApp(cfg, zerolog.Nop())
	app.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestCORS(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		description string
		origin      string
		allowed     bool
	}{
		{"configured frontend", "http://localhost:3000", true},
		{"preview deployment", "https://my-branch.vercel.app", true},
		{"plain http preview", "http://my-branch.vercel.app", false},
		{"unknown origin", "https://evil.example.com", false},
	}

	for _, test := range tests {
		req := httptest.NewRequest(fiber.MethodOptions, "/ok", nil)
		req.Header.Set(fiber.HeaderOrigin, test.origin)
		req.Header.Set(fiber.HeaderAccessControlRequestMethod, fiber.MethodPost)

		res, err := app.Test(req, -1)
		require.NoError(t, err)

		allowOrigin := res.Header.Get(fiber.HeaderAccessControlAllowOrigin)
		if test.allowed {
			assert.Equalf(t, test.origin, allowOrigin, test.description)
			assert.Equalf(t, "true", res.Header.Get(fiber.HeaderAccessControlAllowCredentials), test.description)
		} else {
			assert.Emptyf(t, allowOrigin, test.description)
		}
	}
}

func TestCORSConfigUsesOriginFuncOnly(t *testing.T) {
	cfg := corsConfig(&config.Config{FrontendURL: "https://Bookings.Example.com/", CORSOriginSuffix: ".vercel.app"})

	// a static list next to the func makes fiber warn on every app build
	assert.Empty(t, cfg.AllowOrigins)
	require.NotNil(t, cfg.AllowOriginsFunc)
	assert.True(t, cfg.AllowOriginsFunc("https://bookings.example.com"))
	assert.True(t, cfg.AllowOriginsFunc("https://preview.vercel.app"))
	assert.False(t, cfg.AllowOriginsFunc("http://localhost:3000"))

	fallback := corsConfig(&config.Config{})
	assert.True(t, fallback.AllowOriginsFunc("http://localhost:3000"))
	assert.False(t, fallback.AllowOriginsFunc("https://preview.vercel.app"))
}

func TestPanicBecomesJSON500(t *testing.T) {
	app := newTestApp()

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "internal error", body["message"])
	assert.NotContains(t, string(data), "boom")
}

func TestCommonHeaders(t *testing.T) {
	app := newTestApp()

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get(fiber.HeaderXRequestID))
	assert.Equal(t, "nosniff", res.Header.Get(fiber.HeaderXContentTypeOptions))
}
