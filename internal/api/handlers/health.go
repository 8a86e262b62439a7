// Package handlers implements HTTP handlers for the asc-iap API.
package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// TokenSource mints App Store Connect bearer tokens.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	tokens TokenSource
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(tokens TokenSource) *HealthHandler {
	return &HealthHandler{tokens: tokens}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if a token can be minted, 503 otherwise. It does not
// call App Store Connect.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if _, err := h.tokens.Token(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
