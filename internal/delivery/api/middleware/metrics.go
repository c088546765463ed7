package middleware

import (
	"net/http"
	"time"

	"catalog/internal/errors"
	"catalog/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts, latency and in-flight requests.
type MetricsMiddleware struct {
	metrics  *metrics.Metrics
	skipPath string
	now      func() time.Time
}

// NewMetricsMiddleware creates the middleware. Requests to skipPath are not recorded.
func NewMetricsMiddleware(m *metrics.Metrics, skipPath string) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics:  m,
		skipPath: skipPath,
		now:      time.Now,
	}
}

// Handle observes one request. Routes are labelled with their echo pattern to keep cardinality bounded.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.skipPath != "" && c.Request().URL.Path == m.skipPath {
			return next(c)
		}

		done := m.metrics.RequestStarted()
		defer done()

		start := m.now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			status = http.StatusInternalServerError
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			}
		}

		m.metrics.ObserveRequest(c.Request().Method, c.Path(), status, m.now().Sub(start))

		return err
	}
}
