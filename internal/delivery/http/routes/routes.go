package routes

import (
	"hire-portal/internal/delivery/http/handler"
	"hire-portal/internal/delivery/http/middleware"
	v1 "hire-portal/internal/delivery/http/routes/v1"
	"hire-portal/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health     *handler.HealthHandler
	liveSearch *ws.Handler
	auth       *middleware.AuthMiddleware
	api        v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, liveSearch *ws.Handler, auth *middleware.AuthMiddleware, api v1.Handlers) *Registry {
	return &Registry{health: health, liveSearch: liveSearch, auth: auth, api: api}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerLiveSearch(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

// registerLiveSearch mounts the websocket outside the auth middleware; the
// socket resolves its own token during the handshake.
func (r *Registry) registerLiveSearch(app *fiber.App) {
	if r.liveSearch != nil {
		r.liveSearch.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	var api fiber.Router
	if r.auth != nil {
		api = app.Group("/api", r.auth.Middleware())
	} else {
		api = app.Group("/api")
	}
	RegisterV1(api.Group("/v1"), r.api)
}
