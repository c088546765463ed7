package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "catalog/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, body any) map[string]any {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	return decoded
}

func TestSuccess_OmitsAbsentDataAndMetadata(t *testing.T) {
	reply := Success(nil, "", 0, nil)

	assert.Equal(t, http.StatusOK, reply.Status)

	body := decodeBody(t, reply.Body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Success", body["message"])
	assert.NotContains(t, body, "data")
	assert.NotContains(t, body, "metadata")
	assert.NotContains(t, body, "error_code")
}

func TestSuccess_KeepsFalsyData(t *testing.T) {
	body := decodeBody(t, OK(0, "count").Body)

	assert.Contains(t, body, "data")
	assert.Equal(t, float64(0), body["data"])
}

func TestSuccess_WithMetadata(t *testing.T) {
	reply := Success(map[string]any{"id": 1}, "done", http.StatusAccepted, map[string]any{"source": "cache"})

	assert.Equal(t, http.StatusAccepted, reply.Status)

	body := decodeBody(t, reply.Body)
	assert.Equal(t, "done", body["message"])
	assert.Equal(t, map[string]any{"id": float64(1)}, body["data"])
	assert.Equal(t, map[string]any{"source": "cache"}, body["metadata"])
}

func TestCreated(t *testing.T) {
	reply := Created(map[string]any{"id": 9}, "")

	assert.Equal(t, http.StatusCreated, reply.Status)
	assert.Equal(t, "Resource created successfully", decodeBody(t, reply.Body)["message"])
}

func TestNoContent_Send(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)

	require.NoError(t, NoContent().Send(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestError_Shape(t *testing.T) {
	reply := Error("boom", "SOME_CODE", 0, map[string]any{"field": "name"})

	assert.Equal(t, http.StatusBadRequest, reply.Status)

	body := decodeBody(t, reply.Body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "boom", body["message"])
	assert.Equal(t, "SOME_CODE", body["error_code"])
	assert.Equal(t, "name", body["field"])
	assert.NotContains(t, body, "data")
}

func TestError_WithoutCodeOmitsKey(t *testing.T) {
	body := decodeBody(t, Error("boom", "", http.StatusBadRequest, nil).Body)

	assert.NotContains(t, body, "error_code")
}

func TestError_ReservedExtraKeysAreNested(t *testing.T) {
	reply := Error("real message", "REAL", http.StatusConflict, map[string]any{
		"success":    true,
		"message":    "spoofed",
		"error_code": "SPOOFED",
		"data":       []int{1},
		"details":    "kept",
		"other":      "value",
	})

	body := decodeBody(t, reply.Body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "real message", body["message"])
	assert.Equal(t, "REAL", body["error_code"])
	assert.Equal(t, "value", body["other"])
	assert.NotContains(t, body, "data")

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, details["success"])
	assert.Equal(t, "spoofed", details["message"])
	assert.Equal(t, "SPOOFED", details["error_code"])
	assert.Equal(t, []any{float64(1)}, details["data"])
	assert.Equal(t, "kept", details["details"])
}

func TestReply_SendJSON(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Error("nope", domainerrors.CodeForbidden, http.StatusForbidden, nil).Send(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"nope","error_code":"FORBIDDEN"}`, rec.Body.String())
}
