package handler

import (
	"catalog/config"
	"catalog/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// SystemHandler serves the API description and the health probe.
type SystemHandler struct {
	app config.AppConfig
}

// NewSystemHandler is the constructor for SystemHandler
func NewSystemHandler(cfg *config.Config) *SystemHandler {
	return &SystemHandler{app: cfg.App}
}

// Root describes the running API
func (h *SystemHandler) Root(c echo.Context) error {
	return response.OK(map[string]any{
		"name":    h.app.Name,
		"version": h.app.Version,
		"docs":    h.app.APIPrefix,
	}, "Welcome to "+h.app.Name).Send(c)
}

// Health reports liveness
func (h *SystemHandler) Health(c echo.Context) error {
	return response.OK(map[string]any{"status": "healthy"}, response.MessageSuccess).Send(c)
}
