package handler

import (
	"context"

	"hire-portal/internal/access"
	"hire-portal/internal/delivery/http/dto"
	"hire-portal/internal/delivery/http/middleware"
	"hire-portal/internal/domain/adminuser"
	"hire-portal/internal/pkg/response"
	"hire-portal/internal/search"
	"hire-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserAdministrator interface {
	List(ctx context.Context, s access.Session, query string, c search.UserCriteria, pageIndex, size int) (usecase.UserPage, error)
	Get(ctx context.Context, s access.Session, id string) (adminuser.Row, error)
	Roles(ctx context.Context, s access.Session) ([]string, error)
	UpdateRoles(ctx context.Context, s access.Session, id string, roles []string, reason string) error
	SetEnabled(ctx context.Context, s access.Session, id string, enabled bool, reason string, confirmed bool) error
	Delete(ctx context.Context, s access.Session, id, reason string, confirmed bool) error
}

type AdminUsersHandler struct {
	uc       UserAdministrator
	guard    *middleware.RoleGuard
	pageSize int
}

func NewAdminUsersHandler(uc UserAdministrator, guard *middleware.RoleGuard, pageSize int) *AdminUsersHandler {
	return &AdminUsersHandler{uc: uc, guard: guard, pageSize: pageSize}
}

func (h *AdminUsersHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	admin := r.Group("/admin", h.guard.Require(access.RouteAdminUsers))
	admin.Get("/roles", h.HandleRoles)
	admin.Get("/users", h.HandleList)
	admin.Get("/users/:id", h.HandleGet)
	admin.Put("/users/:id/roles", h.HandleUpdateRoles)
	admin.Put("/users/:id/block", h.HandleBlock)
	admin.Put("/users/:id/unblock", h.HandleUnblock)
	admin.Delete("/users/:id", h.HandleDelete)
}

func (h *AdminUsersHandler) HandleList(c fiber.Ctx) error {
	page, size, err := parsePage(c, h.pageSize)
	if err != nil {
		return err
	}
	criteria := search.UserCriteria{
		Enabled: search.ParseEnabledFilter(c.Query("enabled")),
		Role:    c.Query("role"),
	}

	s := middleware.SessionFrom(c)
	pg, err := h.uc.List(requestContext(c, s), s, c.Query("search"), criteria, page, size)
	if err != nil {
		return mapUsecaseError(err, usecase.OpLoadUsers)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserListResponse(pg))
}

func (h *AdminUsersHandler) HandleGet(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	row, err := h.uc.Get(requestContext(c, s), s, c.Params("id"))
	if err != nil {
		return mapUsecaseError(err, usecase.OpLoadUser)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAdminUserResponse(row))
}

func (h *AdminUsersHandler) HandleRoles(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	roles, err := h.uc.Roles(requestContext(c, s), s)
	if err != nil {
		return mapUsecaseError(err, usecase.OpLoadUsers)
	}
	if roles == nil {
		roles = []string{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RolesResponse{Roles: roles})
}

func (h *AdminUsersHandler) HandleUpdateRoles(c fiber.Ctx) error {
	var req dto.RolesUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	s := middleware.SessionFrom(c)
	if err := h.uc.UpdateRoles(requestContext(c, s), s, c.Params("id"), req.Roles, req.Reason); err != nil {
		return mapUsecaseError(err, usecase.OpUpdateRoles)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminUsersHandler) HandleBlock(c fiber.Ctx) error {
	return h.setEnabled(c, false)
}

func (h *AdminUsersHandler) HandleUnblock(c fiber.Ctx) error {
	return h.setEnabled(c, true)
}

func (h *AdminUsersHandler) setEnabled(c fiber.Ctx, enabled bool) error {
	reason, err := reasonFrom(c)
	if err != nil {
		return err
	}

	s := middleware.SessionFrom(c)
	if err := h.uc.SetEnabled(requestContext(c, s), s, c.Params("id"), enabled, reason, confirmed(c)); err != nil {
		return mapUsecaseError(err, usecase.OpSetEnabled)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminUsersHandler) HandleDelete(c fiber.Ctx) error {
	reason, err := reasonFrom(c)
	if err != nil {
		return err
	}

	s := middleware.SessionFrom(c)
	if err := h.uc.Delete(requestContext(c, s), s, c.Params("id"), reason, confirmed(c)); err != nil {
		return mapUsecaseError(err, usecase.OpDeleteUser)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
