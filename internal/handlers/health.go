package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// HealthHandler serves the Kubernetes liveness and readiness endpoints.
type HealthHandler struct {
	checks  map[string]Pinger
	timeout time.Duration
	logger  *zap.Logger
}

// NewHealthHandler creates a new health handler. checks maps a dependency name
// to its pinger; nil entries are ignored.
func NewHealthHandler(checks map[string]Pinger, logger *zap.Logger) *HealthHandler {
	live := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			live[name] = p
		}
	}
	return &HealthHandler{checks: live, timeout: 2 * time.Second, logger: logger}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness checks.
// Returns 200 OK if the application is running.
func (h *HealthHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness checks.
// Returns 200 OK if every dependency answers a ping.
func (h *HealthHandler) Readiness(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			h.logger.Warn("Readiness check failed", zap.String("dependency", name), zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  name + " unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
