package middleware

import (
	"log"

	"hire-portal/internal/access"

	"github.com/gofiber/fiber/v3"
)

// RoleGuard enforces the route declaration table. Denied requests are
// redirected to the forbidden page.
type RoleGuard struct {
	routes access.Table
	logger *log.Logger
}

func NewRoleGuard(routes access.Table, logger *log.Logger) *RoleGuard {
	if routes == nil {
		routes = access.DefaultRoutes()
	}
	return &RoleGuard{routes: routes, logger: logger}
}

func (g *RoleGuard) Require(route string) fiber.Handler {
	return func(c fiber.Ctx) error {
		s := SessionFrom(c)
		d := g.routes.Decide(route, s)
		if d.Allowed {
			return c.Next()
		}
		if g.logger != nil {
			g.logger.Printf("[Guard] Denied route=%s user=%s path=%s", route, s.UserID, c.Path())
		}
		return c.Redirect().Status(fiber.StatusSeeOther).To(d.Redirect)
	}
}
