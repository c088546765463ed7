package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Default messages
const (
	MessageSuccess = "Success"
	MessageCreated = "Resource created successfully"
	MessageUpdated = "Resource updated successfully"
)

// Reply is a status code plus the body to send with it. A nil Body means no content.
type Reply struct {
	Status int
	Body   any
}

// Send writes the reply through echo
func (r Reply) Send(c echo.Context) error {
	if r.Body == nil {
		return c.NoContent(r.Status)
	}

	return c.JSON(r.Status, r.Body)
}

// Success builds a success envelope. Empty message and zero status fall back to "Success" and 200.
func Success(data any, message string, status int, metadata map[string]any) Reply {
	if message == "" {
		message = MessageSuccess
	}
	if status == 0 {
		status = http.StatusOK
	}

	return Reply{
		Status: status,
		Body: Envelope{
			Success:  true,
			Message:  message,
			Data:     data,
			Metadata: metadata,
		},
	}
}

// OK is Success with status 200 and no metadata
func OK(data any, message string) Reply {
	return Success(data, message, http.StatusOK, nil)
}

// Created builds a 201 success envelope
func Created(data any, message string) Reply {
	if message == "" {
		message = MessageCreated
	}

	return Success(data, message, http.StatusCreated, nil)
}

// NoContent builds an empty 204 reply
func NoContent() Reply {
	return Reply{Status: http.StatusNoContent}
}

// Error builds an error envelope. Zero status falls back to 400.
func Error(message, errorCode string, status int, extra map[string]any) Reply {
	if status == 0 {
		status = http.StatusBadRequest
	}

	return Reply{
		Status: status,
		Body: ErrorEnvelope{
			Message:   message,
			ErrorCode: errorCode,
			Extra:     extra,
		},
	}
}
