package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware_Handle(t *testing.T) {
	registry := prometheus.NewRegistry()
	mm := NewMetricsMiddleware(metrics.NewWithRegistry("test", registry), "/metrics")

	e := echo.New()
	e.Use(mm.Handle)
	e.GET("/products/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/products/1", "/products/2", "/metrics"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	count, err := testutil.GatherAndCount(registry, "test_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "both product requests share one series and /metrics is skipped")
}
