package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/Mamba1099/milk-farm-sub002/internal/interfaces/http"
	"github.com/Mamba1099/milk-farm-sub002/pkg/logger"
)

func TestMetrics_CuentaPorRuta(t *testing.T) {
	m := apphttp.NewMetrics("milkfarm")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/animals/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for _, id := range []string{"a", "b", "c"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/animals/"+id, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	body := string(raw)

	assert.Contains(t, body, `milkfarm_http_requests_total{method="GET",route="/animals/:id",status="204"} 3`)
	assert.Contains(t, body, "milkfarm_http_request_duration_seconds_bucket")
	assert.NotContains(t, body, `route="/animals/a"`, "las series se etiquetan por patrón, no por id")
}

func TestRequestLogger_EscribeUnEventoPorPeticion(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "info", Output: &buf})

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger(log))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })

	for _, path := range []string{"/ok", "/missing"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "/ok", first["path"])
	assert.EqualValues(t, 200, first["status"])
	assert.NotEmpty(t, first["request_id"])

	assert.Equal(t, "warn", second["level"])
	assert.EqualValues(t, 404, second["status"])
}
