package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"jabRental/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HealthCheck probes one dependency of the service.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthResponse struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime,omitempty"`
	Environment string  `json:"environment,omitempty"`
	Version     string  `json:"version,omitempty"`
	Error       string  `json:"error,omitempty"`
}

type HealthHandler struct {
	checks      []HealthCheck
	environment string
	version     string
	startedAt   time.Time
	timeout     time.Duration
	now         func() time.Time
}

func NewHealthHandler(environment, version string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks:      checks,
		environment: environment,
		version:     version,
		startedAt:   time.Now(),
		timeout:     3 * time.Second,
		now:         time.Now,
	}
}

func (h *HealthHandler) probe(ctx context.Context) error {
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			return fmt.Errorf("%s: %w", check.Name, err)
		}
	}
	return nil
}

func noCache(c echo.Context) {
	header := c.Response().Header()
	header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	header.Set("Pragma", "no-cache")
	header.Set("Expires", "0")
}

// Health reports liveness together with the state of every dependency.
func (h *HealthHandler) Health(c echo.Context) error {
	noCache(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	now := h.now()
	if err := h.probe(ctx); err != nil {
		logger.Error("Health check failed", err)
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "unhealthy",
			Error:     err.Error(),
			Timestamp: now.UTC().Format(time.RFC3339Nano),
		})
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		Timestamp:   now.UTC().Format(time.RFC3339Nano),
		Uptime:      now.Sub(h.startedAt).Seconds(),
		Environment: h.environment,
		Version:     h.version,
	})
}

// Head answers HEAD probes with the status only.
func (h *HealthHandler) Head(c echo.Context) error {
	noCache(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.probe(ctx); err != nil {
		logger.Warn("Health probe failed", err)
		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}
