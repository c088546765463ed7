package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "catalog", want: "catalog"},
		{name: "spaces and case", in: "Product Catalog API", want: "product_catalog_api"},
		{name: "leading digits dropped", in: "42 Shop", want: "shop"},
		{name: "empty", in: "", want: defaultNamespace},
		{name: "only symbols", in: "***", want: defaultNamespace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, namespace(tt.in))
		})
	}
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.ObserveRequest("get", "/api/v1/products/:id", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/products/:id", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest("GET", "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/products/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestMetrics_InFlight(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	done := m.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inFlight))

	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestMetrics_ObserveError(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.ObserveError("NOT_FOUND", http.StatusNotFound)
	m.ObserveError("", http.StatusMethodNotAllowed)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("NOT_FOUND", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("none", "405")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RequestStarted()()
		m.ObserveRequest("GET", "/", http.StatusOK, time.Second)
		m.ObserveError("X", http.StatusBadRequest)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())
	m.ObserveRequest("GET", "/health", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `test_http_requests_total{method="GET",route="/health",status="200"} 1`))
	assert.Contains(t, body, "go_goroutines")
}
