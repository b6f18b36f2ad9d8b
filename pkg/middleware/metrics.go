package middleware

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/NeuralTrust/TakeALook/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

// Middleware counts requests by method, route template and status class.
// Unmatched paths share a single route label.
func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}

		prometheus.HTTPRequestsTotal.WithLabelValues(
			c.Method(),
			route,
			m.getStatusClass(strconv.Itoa(status)),
		).Inc()

		return err
	}
}

func (m *metricsMiddleware) getStatusClass(status string) string {
	code, err := strconv.Atoi(status)
	if err != nil || code < 100 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", code/100)
}
