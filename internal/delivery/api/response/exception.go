package response

import (
	"fmt"
	"net/http"

	domainerrors "catalog/internal/domain/errors"
)

// Error codes that have no AppError counterpart
const (
	CodeRouteNotFound = "ROUTE_NOT_FOUND"
	CodeHTTPError     = "HTTP_ERROR"
)

// MessageInternalError is the only message a client ever sees for a server fault.
const MessageInternalError = "Internal server error"

// NotFound builds a 404. custom wins over the generated message; a nil id drops the id clause.
func NotFound(resource string, id any, custom string) Reply {
	message := custom
	if message == "" {
		if id != nil {
			message = fmt.Sprintf("%s with id '%v' not found", resource, id)
		} else {
			message = resource + " not found"
		}
	}

	extra := map[string]any{"resource": resource}
	if id != nil {
		extra["resource_id"] = id
	}

	return Error(message, domainerrors.CodeNotFound, http.StatusNotFound, extra)
}

// ValidationError builds a 422 listing every field issue.
func ValidationError(issues []domainerrors.ValidationIssue, message string) Reply {
	if message == "" {
		message = "Validation error"
	}
	if issues == nil {
		issues = []domainerrors.ValidationIssue{}
	}

	return Error(message, domainerrors.CodeValidation, http.StatusUnprocessableEntity, map[string]any{"errors": issues})
}

// BadRequest builds a 400. Empty code falls back to BAD_REQUEST.
func BadRequest(message, code string, extra map[string]any) Reply {
	if code == "" {
		code = domainerrors.CodeBadRequest
	}

	return Error(message, code, http.StatusBadRequest, extra)
}

// Conflict builds a 409. Empty code falls back to CONFLICT.
func Conflict(message, code string, extra map[string]any) Reply {
	if code == "" {
		code = domainerrors.CodeConflict
	}

	return Error(message, code, http.StatusConflict, extra)
}

// Unauthorized builds a 401. Empty message and code fall back to the defaults.
func Unauthorized(message, code string) Reply {
	if message == "" {
		message = "Unauthorized"
	}
	if code == "" {
		code = domainerrors.CodeUnauthorized
	}

	return Error(message, code, http.StatusUnauthorized, nil)
}

// Forbidden builds a 403. Empty message and code fall back to the defaults.
func Forbidden(message, code string) Reply {
	if message == "" {
		message = "Forbidden"
	}
	if code == "" {
		code = domainerrors.CodeForbidden
	}

	return Error(message, code, http.StatusForbidden, nil)
}

// RouteNotFound builds the 404 for a request that matched no route.
func RouteNotFound(path, method string) Reply {
	return Error(
		fmt.Sprintf("Route '%s %s' not found", method, path),
		CodeRouteNotFound,
		http.StatusNotFound,
		map[string]any{"path": path, "method": method},
	)
}

// InternalError builds a 500 with the generic message unless message is set.
func InternalError(message, code string) Reply {
	if message == "" {
		message = MessageInternalError
	}
	if code == "" {
		code = domainerrors.CodeInternalError
	}

	return Error(message, code, http.StatusInternalServerError, nil)
}

// FromAppError renders an AppError with the builder matching its kind.
// Internal kinds keep their code but never their message.
func FromAppError(appErr domainerrors.AppError) Reply {
	message, code, extra := appErr.Message(), appErr.ErrorCode(), appErr.Extra()

	switch appErr.Kind() {
	case domainerrors.KindBadRequest:
		return BadRequest(message, code, extra)
	case domainerrors.KindConflict:
		return Conflict(message, code, extra)
	case domainerrors.KindUnauthorized, domainerrors.KindForbidden,
		domainerrors.KindNotFound, domainerrors.KindUnprocessable:
		return Error(message, code, appErr.HTTPCode(), extra)
	case domainerrors.KindInternal:
		return InternalError("", code)
	default:
		return InternalError("", "")
	}
}
