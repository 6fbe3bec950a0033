package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tasker-hq/tasker-go/internal/observability"
	"github.com/tasker-hq/tasker-go/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	postgres    *persistence.Postgres
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName string, postgres *persistence.Postgres, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, postgres: postgres, metrics: metrics}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
	})
}

// Ready reports readiness by checking the optional database dependency.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	deps := fiber.Map{"postgres": "disabled"}
	ready := true

	if pool := h.postgres.PoolHandle(); pool != nil {
		if err := pool.Ping(ctx); err != nil {
			deps["postgres"] = "unreachable"
			ready = false
		} else {
			deps["postgres"] = "ok"
		}
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"status":       map[bool]string{true: "ready", false: "degraded"}[ready],
		"dependencies": deps,
	})
}

// Metrics dumps the in-memory request and error counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests": requests,
		"errors":   errs,
	})
}
