package response

import (
	"net/http"
	"testing"

	domainerrors "catalog/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		id       any
		custom   string
		message  string
		hasID    bool
	}{
		{name: "with id", resource: "Product", id: 42, message: "Product with id '42' not found", hasID: true},
		{name: "without id", resource: "Order", message: "Order not found"},
		{name: "custom message wins", resource: "Resource", id: 7, custom: "gone", message: "gone", hasID: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := NotFound(tt.resource, tt.id, tt.custom)

			assert.Equal(t, http.StatusNotFound, reply.Status)

			body := decodeBody(t, reply.Body)
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, "NOT_FOUND", body["error_code"])
			assert.Equal(t, tt.resource, body["resource"])
			if tt.hasID {
				assert.Contains(t, body, "resource_id")
			} else {
				assert.NotContains(t, body, "resource_id")
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	issues := []domainerrors.ValidationIssue{
		{Location: []string{"body", "price"}, Message: "must be greater than 0", Type: "gt"},
	}

	reply := ValidationError(issues, "")

	assert.Equal(t, http.StatusUnprocessableEntity, reply.Status)

	body := decodeBody(t, reply.Body)
	assert.Equal(t, "Validation error", body["message"])
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])

	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, map[string]any{
		"loc":  []any{"body", "price"},
		"msg":  "must be greater than 0",
		"type": "gt",
	}, errs[0])
}

func TestExceptionBuilders_StatusAndCode(t *testing.T) {
	tests := []struct {
		name    string
		reply   Reply
		status  int
		code    string
		message string
	}{
		{"bad request default code", BadRequest("bad", "", nil), http.StatusBadRequest, "BAD_REQUEST", "bad"},
		{"bad request custom code", BadRequest("missing", "MISSING_QUERY", nil), http.StatusBadRequest, "MISSING_QUERY", "missing"},
		{"conflict default code", Conflict("dup", "", nil), http.StatusConflict, "CONFLICT", "dup"},
		{"conflict custom code", Conflict("dup", "EMAIL_EXISTS", nil), http.StatusConflict, "EMAIL_EXISTS", "dup"},
		{"unauthorized default", Unauthorized("", ""), http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized"},
		{"forbidden default", Forbidden("", ""), http.StatusForbidden, "FORBIDDEN", "Forbidden"},
		{"internal default", InternalError("", ""), http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
		{"internal custom code", InternalError("", "DATABASE_EXECUTE_FAILED"), http.StatusInternalServerError, "DATABASE_EXECUTE_FAILED", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.reply.Status)

			body := decodeBody(t, tt.reply.Body)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.code, body["error_code"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestRouteNotFound(t *testing.T) {
	reply := RouteNotFound("/nonexistent", http.MethodGet)

	assert.Equal(t, http.StatusNotFound, reply.Status)

	body := decodeBody(t, reply.Body)
	assert.Equal(t, "Route 'GET /nonexistent' not found", body["message"])
	assert.Equal(t, "ROUTE_NOT_FOUND", body["error_code"])
	assert.Equal(t, "/nonexistent", body["path"])
	assert.Equal(t, "GET", body["method"])
}

func TestFromAppError(t *testing.T) {
	tests := []struct {
		name    string
		err     domainerrors.AppError
		status  int
		code    string
		message string
		extra   map[string]any
	}{
		{
			name:    "product not found keeps refined code and extra",
			err:     domainerrors.ProductNotFound(42),
			status:  http.StatusNotFound,
			code:    "PRODUCT_NOT_FOUND",
			message: "Product with id 42 not found",
			extra:   map[string]any{"product_id": float64(42)},
		},
		{
			name:    "invalid product data",
			err:     domainerrors.ProductInvalidData("Insufficient stock"),
			status:  http.StatusBadRequest,
			code:    "PRODUCT_INVALID_DATA",
			message: "Insufficient stock",
		},
		{
			name:    "product conflict",
			err:     domainerrors.ProductAlreadyExists(""),
			status:  http.StatusConflict,
			code:    "PRODUCT_ALREADY_EXISTS",
			message: "Product already exists",
		},
		{
			name:    "unauthorized",
			err:     domainerrors.ErrInvalidCredentials,
			status:  http.StatusUnauthorized,
			code:    "INVALID_CREDENTIALS",
			message: "Incorrect username or password",
		},
		{
			name:    "forbidden",
			err:     domainerrors.ErrInsufficientRole,
			status:  http.StatusForbidden,
			code:    "FORBIDDEN",
			message: "Not enough permissions",
		},
		{
			name:    "unauthorized keeps extra",
			err:     domainerrors.Unauthorized("TOKEN_EXPIRED", "Token has expired").With("token_type", "access"),
			status:  http.StatusUnauthorized,
			code:    "TOKEN_EXPIRED",
			message: "Token has expired",
			extra:   map[string]any{"token_type": "access"},
		},
		{
			name:    "forbidden keeps extra",
			err:     domainerrors.Forbidden("", "Not enough permissions").With("required_role", "admin"),
			status:  http.StatusForbidden,
			code:    "FORBIDDEN",
			message: "Not enough permissions",
			extra:   map[string]any{"required_role": "admin"},
		},
		{
			name:    "internal hides message",
			err:     domainerrors.NewDatabaseExecuteError(assert.AnError, "failed to create user"),
			status:  http.StatusInternalServerError,
			code:    "DATABASE_EXECUTE_FAILED",
			message: "Internal server error",
		},
		{
			name:    "unprocessable",
			err:     domainerrors.NewBaseError(domainerrors.KindUnprocessable, "", "cannot process"),
			status:  http.StatusUnprocessableEntity,
			code:    "VALIDATION_ERROR",
			message: "cannot process",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := FromAppError(tt.err)

			assert.Equal(t, tt.status, reply.Status)

			body := decodeBody(t, reply.Body)
			assert.Equal(t, tt.code, body["error_code"])
			assert.Equal(t, tt.message, body["message"])
			for key, value := range tt.extra {
				assert.Equal(t, value, body[key])
			}
		})
	}
}
