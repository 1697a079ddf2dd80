package handler

import (
	"context"
	"time"

	"skillswap/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

// Health reports component status. The cache is optional, so a dead Redis
// degrades the report but never fails the check; a dead database does.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	components := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}

	status := fiber.StatusOK
	if h.db == nil || h.db.Ping(ctx) != nil {
		components["database"] = "down"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		components["cache"] = "down"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "degraded", components)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, components)
}
