// Package middleware holds the API-level middleware: error normalization,
// bearer authentication, role checks and request metrics.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"catalog/internal/delivery/api/response"
	deliverycontext "catalog/internal/delivery/context"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/errors"
	"catalog/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ErrorMiddleware is the single place where failures become error envelopes.
type ErrorMiddleware struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// ErrorMiddlewareParams holds dependencies for ErrorMiddleware, injected by Fx.
type ErrorMiddlewareParams struct {
	fx.In

	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(params ErrorMiddlewareParams) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger:  params.Logger,
		metrics: params.Metrics,
	}
}

// Handle runs the rest of the chain and renders whatever it returns or panics with.
func (m *ErrorMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if r == http.ErrAbortHandler {
					panic(r)
				}
				err = m.render(c, panicError(r))
			}
		}()

		if err := next(c); err != nil {
			return m.render(c, err)
		}

		res := c.Response()
		if !res.Committed && res.Status == http.StatusNotFound {
			return m.render(c, echo.ErrNotFound)
		}

		return nil
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if renderErr := m.render(c, err); renderErr != nil {
		m.log(c).Error("Failed to write error response", slog.Any("error", renderErr))
	}
}

// render converts err to exactly one error envelope and writes it.
func (m *ErrorMiddleware) render(c echo.Context, err error) error {
	if c.Response().Committed {
		m.log(c).Warn("Error after response was committed", slog.String("error", errors.Verbose(err)))

		return nil
	}

	reply := m.classify(c, err)
	if body, ok := reply.Body.(response.ErrorEnvelope); ok {
		m.metrics.ObserveError(body.ErrorCode, reply.Status)
	}

	return reply.Send(c)
}

// classify picks the envelope for err, first match wins:
// AppError, ValidationError, unmatched route, other echo.HTTPError, unknown fault.
func (m *ErrorMiddleware) classify(c echo.Context, err error) response.Reply {
	logger := m.log(c)
	req := c.Request()

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Kind() == domainerrors.KindInternal {
			logger.Error("Internal error",
				slog.String("error_code", appErr.ErrorCode()),
				slog.String("error", errors.Verbose(err)),
			)
		} else {
			logger.Warn("Request rejected",
				slog.String("error_code", appErr.ErrorCode()),
				slog.Int("status", appErr.HTTPCode()),
				slog.String("message", appErr.Message()),
			)
		}

		return response.FromAppError(appErr)
	}

	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		logger.Warn("Validation failed", slog.String("error", validationErr.Error()))

		return response.ValidationError(validationErr.Issues(), "")
	}

	if errors.Is(err, echo.ErrNotFound) {
		logger.Warn("Route not found", slog.String("method", req.Method), slog.String("path", req.URL.Path))

		return response.RouteNotFound(req.URL.Path, req.Method)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := httpMessage(httpErr)
		logger.Warn("HTTP error", slog.Int("status", httpErr.Code), slog.String("message", message))

		if httpErr.Code == http.StatusNotFound {
			return response.NotFound("Resource", nil, message)
		}

		return response.Error(message, response.CodeHTTPError, httpErr.Code, nil)
	}

	logger.Error("Unhandled error",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("error", errors.Verbose(err)),
	)

	return response.FromAppError(domainerrors.ErrInternalError)
}

// log prefers the request logger. A handler that swapped the request context
// still gets its lines tagged with the request id.
func (m *ErrorMiddleware) log(c echo.Context) *slog.Logger {
	if logger := deliverycontext.GetLogger(c.Request().Context()); logger != nil {
		return logger
	}
	if id := deliverycontext.GetRequestID(c); id != "" {
		return m.logger.With(slog.String("request_id", id))
	}

	return m.logger
}

func httpMessage(httpErr *echo.HTTPError) string {
	switch msg := httpErr.Message.(type) {
	case string:
		return msg
	case nil:
		return http.StatusText(httpErr.Code)
	default:
		return fmt.Sprint(msg)
	}
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return errors.WithStack(err)
	}

	return errors.Errorf("panic: %v", r)
}
