package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NeuralTrust/TakeALook/pkg/config"
	"github.com/NeuralTrust/TakeALook/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TakeALook/pkg/infra/logger"
	"github.com/NeuralTrust/TakeALook/pkg/infra/prometheus"
	"github.com/NeuralTrust/TakeALook/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminApp(t *testing.T) (*fiber.App, jwt.Manager) {
	t.Helper()
	manager := jwt.NewJwtManager(&config.ServerConfig{SecretKey: "test-secret"})
	auth := middleware.NewAdminAuthMiddleware(logger.NewDiscardLogger(), manager)

	app := fiber.New()
	app.Delete("/logs/:id", auth.Middleware(), func(c *fiber.Ctx) error {
		subject, _ := c.Locals(middleware.AdminSubjectKey).(string) //nolint:errcheck
		return c.SendString(subject)
	})
	return app, manager
}

func TestAdminAuthMiddleware(t *testing.T) {
	app, manager := newAdminApp(t)
	valid, err := manager.CreateToken("ops", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"empty token", "Bearer ", fiber.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", fiber.StatusUnauthorized},
		{"valid token", "Bearer " + valid, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/logs/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAdminAuthMiddleware_ForeignSecret(t *testing.T) {
	app, _ := newAdminApp(t)
	other := jwt.NewJwtManager(&config.ServerConfig{SecretKey: "another-secret"})
	token, err := other.CreateToken("ops", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/logs/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPanicRecoverMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewPanicRecoverMiddleware(logger.NewDiscardLogger()).Middleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("handler exploded")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestMetricsMiddleware_CountsByRouteTemplate(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewMetricsMiddleware(logger.NewDiscardLogger()).Middleware())
	app.Get("/api/v1/logs/:log_id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	counter := prometheus.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/logs/:log_id", "4xx")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/logs/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
