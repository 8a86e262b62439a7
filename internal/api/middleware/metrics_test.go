package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	mw "github.com/donaldgifford/asc-iap/internal/api/middleware"
	"github.com/donaldgifford/asc-iap/internal/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		route      string
		target     string
		handler    echo.HandlerFunc
		wantPath   string
		wantStatus string
	}{
		{
			name:   "records route pattern",
			method: http.MethodGet,
			route:  "/api/v1/batches/:id",
			target: "/api/v1/batches/0b9a",
			handler: func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
			},
			wantPath:   "/api/v1/batches/:id",
			wantStatus: "200",
		},
		{
			name:   "records handler error status",
			method: http.MethodDelete,
			route:  "/api/v1/batches/:id",
			target: "/api/v1/batches/missing",
			handler: func(_ echo.Context) error {
				return echo.NewHTTPError(http.StatusNotFound, "not found")
			},
			wantPath:   "/api/v1/batches/:id",
			wantStatus: "404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(mw.Metrics())
			e.Add(tt.method, tt.route, tt.handler)

			counter := metrics.HTTPRequestsTotal.WithLabelValues(tt.method, tt.wantPath, tt.wantStatus)
			before := ptestutil.ToFloat64(counter)

			req := httptest.NewRequest(tt.method, tt.target, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, strconv.Itoa(rec.Code))
			assert.InDelta(t, before+1, ptestutil.ToFloat64(counter), 0)
		})
	}
}

func TestMetricsMiddleware_UnmatchedPathNotLabelled(t *testing.T) {
	e := echo.New()
	e.Use(mw.Metrics())
	e.GET("/api/v1/apps", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wp-admin", http.NoBody))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	raw := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/wp-admin", "404")
	assert.InDelta(t, 0, ptestutil.ToFloat64(raw), 0)
}

func TestMetricsMiddleware_HealthGauges(t *testing.T) {
	e := echo.New()
	e.Use(mw.Metrics())
	healthy := true
	e.GET("/readyz", func(c echo.Context) error {
		if healthy {
			return c.NoContent(http.StatusOK)
		}
		return c.NoContent(http.StatusServiceUnavailable)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
	assert.InDelta(t, 1, ptestutil.ToFloat64(metrics.ReadyzUp), 0)

	healthy = false
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
	assert.InDelta(t, 0, ptestutil.ToFloat64(metrics.ReadyzUp), 0)
}
