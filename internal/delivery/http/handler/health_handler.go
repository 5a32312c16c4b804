package handler

import (
	"context"
	"time"

	"learnpath/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is anything the health endpoint should probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	redis Pinger
}

func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

// Health reports overall liveness plus per-dependency status. Redis being
// down degrades caching but not the service, so it never fails the check.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	deps := map[string]string{}
	status := fiber.StatusOK

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			deps["postgres"] = "down"
			status = fiber.StatusServiceUnavailable
		} else {
			deps["postgres"] = "up"
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			deps["redis"] = "down"
		} else {
			deps["redis"] = "up"
		}
	}

	return response.Success(c, status, response.MessageOK, fiber.Map{
		"status":       httpStatusWord(status),
		"dependencies": deps,
	})
}

func httpStatusWord(status int) string {
	if status == fiber.StatusOK {
		return "healthy"
	}
	return "degraded"
}
