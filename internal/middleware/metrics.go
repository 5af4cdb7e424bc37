package middleware

import (
	"strconv"
	"time"

	"seedcare/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// MetricsMiddleware records request counts and latency per route template
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		endpoint := c.Route().Path
		metrics.APIRequestsTotal.WithLabelValues(c.Method(), endpoint, strconv.Itoa(status)).Inc()
		metrics.APIRequestDuration.WithLabelValues(c.Method(), endpoint).Observe(time.Since(start).Seconds())
		return err
	}
}
