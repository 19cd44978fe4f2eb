package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/lagerverwaltung-api/internal/interfaces/http"
	"github.com/jhoicas/lagerverwaltung-api/pkg/logger"
)

type observation struct {
	method, route string
	status        int
}

type recordingObserver struct {
	mu  sync.Mutex
	got []observation
}

func (r *recordingObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, observation{method, route, status})
}

func TestRequestLogger_EtiquetaPatronDeRuta(t *testing.T) {
	var buf bytes.Buffer
	obs := &recordingObserver{}

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.New(logger.Config{Env: "production", Output: &buf}), obs))
	app.Get("/api/stock/:code", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "nope")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/stock/STUHL-07", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	require.Len(t, obs.got, 2)
	assert.Equal(t, observation{"GET", "/api/stock/:code", 200}, obs.got[0])
	assert.Equal(t, fiber.StatusTeapot, obs.got[1].status, "el status del error debe verse en la observación")
	assert.Contains(t, buf.String(), `"path":"/api/stock/STUHL-07"`)
}
