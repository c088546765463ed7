package middleware

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"catalog/config"
	deliverycontext "catalog/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware writes the start, completion and failure lines of every request
// and stamps the elapsed time on the response.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
	now    func() time.Time
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
		now:    time.Now,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		logger := deliverycontext.GetLoggerOrDefault(req.Context(), m.logger)
		start := m.now()

		c.Response().Before(func() {
			c.Response().Header().Set(deliverycontext.HeaderXProcessTime, formatSeconds(m.now().Sub(start)))
		})

		startAttrs := []slog.Attr{
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("client_ip", c.RealIP()),
		}
		if m.debug {
			startAttrs = append(startAttrs, slog.String("user_agent", req.UserAgent()))
			if req.URL.RawQuery != "" {
				startAttrs = append(startAttrs, slog.String("query", req.URL.RawQuery))
			}
		}
		logger.LogAttrs(req.Context(), slog.LevelInfo, "Request started", startAttrs...)

		err := next(c)

		elapsed := m.now().Sub(start)
		if err != nil {
			logger.LogAttrs(context.WithoutCancel(req.Context()), slog.LevelError, "Request failed",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.String("error", err.Error()),
				slog.Duration("duration", elapsed),
			)

			return err
		}

		status := c.Response().Status
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		logger.LogAttrs(context.WithoutCancel(req.Context()), level, "Request completed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", elapsed),
		)

		return nil
	}
}

// formatSeconds renders a duration as decimal seconds.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 6, 64)
}
