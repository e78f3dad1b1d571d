package handler

import (
	"context"
	"time"

	"hire-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is a dependency whose reachability is reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps map[string]Pinger
}

func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.HandleHealth)
	r.Get("/forbidden", h.HandleForbidden)
}

// HandleHealth always answers 200; optional dependencies are reported as
// "up" or "down" since the portal degrades without them.
func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	status := map[string]string{}
	if h != nil {
		for name, dep := range h.deps {
			if dep == nil {
				continue
			}
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			if err := dep.Ping(ctx); err != nil {
				status[name] = "down"
			} else {
				status[name] = "up"
			}
			cancel()
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, status)
}

func (h *HealthHandler) HandleForbidden(c fiber.Ctx) error {
	return response.Error(c, fiber.StatusForbidden, "You are not allowed to access this page.", nil)
}
