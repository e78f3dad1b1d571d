package handler

import (
	"context"

	"hire-portal/internal/access"
	"hire-portal/internal/delivery/http/middleware"
	"hire-portal/internal/pkg/response"
	"hire-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileEditor interface {
	Get(ctx context.Context, s access.Session) (usecase.ProfileForm, error)
	Update(ctx context.Context, s access.Session, form usecase.ProfileForm) (usecase.ProfileForm, error)
}

type ProfileHandler struct {
	uc    ProfileEditor
	guard *middleware.RoleGuard
}

func NewProfileHandler(uc ProfileEditor, guard *middleware.RoleGuard) *ProfileHandler {
	return &ProfileHandler{uc: uc, guard: guard}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	authed := h.guard.Require(access.RouteProfile)
	r.Get("/profile", authed, h.GetProfile)
	r.Put("/profile", authed, h.UpdateProfile)
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	form, err := h.uc.Get(requestContext(c, s), s)
	if err != nil {
		return mapUsecaseError(err, usecase.OpLoadProfile)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, form)
}

func (h *ProfileHandler) UpdateProfile(c fiber.Ctx) error {
	var req usecase.ProfileForm
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	s := middleware.SessionFrom(c)
	form, err := h.uc.Update(requestContext(c, s), s, req)
	if err != nil {
		return mapUsecaseError(err, usecase.OpUpdateProfile)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, form)
}
