package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog/config"
	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}

	return lines
}

// newLoggedPipeline chains the request id and logger middleware around handler.
func newLoggedPipeline(buf *bytes.Buffer, handler echo.HandlerFunc) (*LoggerMiddleware, echo.HandlerFunc) {
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	requestID := NewRequestIDMiddleware(logger)
	requestID.generate = func() string { return "req-42" }

	lm := NewLoggerMiddleware(logger, &config.Config{})
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lm.now = func() time.Time {
		tick = tick.Add(250 * time.Millisecond)

		return tick
	}

	return lm, requestID.Process(lm.Handle(handler))
}

func TestLoggerMiddleware_Completed(t *testing.T) {
	var buf bytes.Buffer
	_, handler := newLoggedPipeline(&buf, func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]string{"ok": "yes"})
	})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/v1/products", nil), rec)

	require.NoError(t, handler(c))

	assert.Equal(t, "req-42", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "0.250000", rec.Header().Get(deliverycontext.HeaderXProcessTime))

	lines := readLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "Request started", lines[0]["msg"])
	assert.Equal(t, "POST", lines[0]["method"])
	assert.Equal(t, "/api/v1/products", lines[0]["path"])
	assert.Equal(t, "Request completed", lines[1]["msg"])
	assert.Equal(t, float64(http.StatusCreated), lines[1]["status"])
	for _, line := range lines {
		assert.Equal(t, "req-42", line["request_id"])
	}
}

func TestLoggerMiddleware_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "success", status: http.StatusOK, wantLevel: "INFO"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, handler := newLoggedPipeline(&buf, func(c echo.Context) error {
				return c.NoContent(tt.status)
			})

			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			require.NoError(t, handler(c))

			lines := readLines(t, &buf)
			require.Len(t, lines, 2)
			assert.Equal(t, tt.wantLevel, lines[1]["level"])
		})
	}
}

func TestLoggerMiddleware_Failed(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")
	_, handler := newLoggedPipeline(&buf, func(echo.Context) error {
		return boom
	})

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/explode", nil), httptest.NewRecorder())

	err := handler(c)

	assert.ErrorIs(t, err, boom)
	lines := readLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "Request failed", lines[1]["msg"])
	assert.Equal(t, "boom", lines[1]["error"])
	assert.Equal(t, "ERROR", lines[1]["level"])
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "1.500000", formatSeconds(1500*time.Millisecond))
	assert.Equal(t, "0.000120", formatSeconds(120*time.Microsecond))
}
