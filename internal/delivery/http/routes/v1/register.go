package v1

import (
	"hire-portal/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Jobs         *handler.JobsHandler
	Applications *handler.ApplicationsHandler
	AdminUsers   *handler.AdminUsersHandler
	Profile      *handler.ProfileHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(r)
	}
	if h.Applications != nil {
		h.Applications.RegisterRoutes(r)
	}
	if h.AdminUsers != nil {
		h.AdminUsers.RegisterRoutes(r)
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(r)
	}
}
