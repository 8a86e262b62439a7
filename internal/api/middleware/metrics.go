// Package middleware provides Echo middleware for the asc-iap HTTP server.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/asc-iap/internal/metrics"
)

// unmatchedPath labels requests that hit no route, keeping label cardinality
// bounded when clients probe arbitrary URLs.
const unmatchedPath = "unmatched"

// metricsSkipPaths defines URL paths excluded from HTTP request metrics.
var metricsSkipPaths = map[string]struct{}{
	"/metrics": {},
	"/healthz": {},
	"/readyz":  {},
}

// healthGauges maps probe paths to their 0/1 gauge.
var healthGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and status
// by route pattern. Probe paths only update their up/down gauges.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, skip := metricsSkipPaths[c.Request().URL.Path]; skip {
				err := next(c)
				updateHealthGauge(c.Request().URL.Path, c.Response().Status)
				return err
			}

			start := time.Now()

			err := next(c)
			if err != nil {
				// Let echo write the error so the recorded status is final.
				c.Error(err)
				err = nil
			}

			path := c.Path()
			if path == "" || path == "/*" {
				path = unmatchedPath
			}
			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}

// updateHealthGauge sets the gauge for a health path to 1 (success) or 0 (failure).
func updateHealthGauge(path string, status int) {
	gauge, ok := healthGauges[path]
	if !ok {
		return
	}

	if status >= 200 && status < 300 {
		gauge.Set(1)
	} else {
		gauge.Set(0)
	}
}
