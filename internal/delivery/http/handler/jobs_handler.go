package handler

import (
	"context"

	"hire-portal/internal/access"
	"hire-portal/internal/delivery/http/dto"
	"hire-portal/internal/delivery/http/middleware"
	"hire-portal/internal/domain/job"
	"hire-portal/internal/pkg/response"
	"hire-portal/internal/search"
	"hire-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobBrowser interface {
	Browse(ctx context.Context, s access.Session, c search.JobCriteria, pageIndex, size int) (usecase.JobPage, error)
	Get(ctx context.Context, s access.Session, id string) (job.JobOffer, error)
}

type JobManager interface {
	Create(ctx context.Context, s access.Session, offer job.JobOffer) (job.JobOffer, error)
	Update(ctx context.Context, s access.Session, id string, offer job.JobOffer) (job.JobOffer, error)
	Delete(ctx context.Context, s access.Session, id, reason string, confirmed bool) error
}

type JobsHandler struct {
	browse   JobBrowser
	manage   JobManager
	guard    *middleware.RoleGuard
	pageSize int
}

func NewJobsHandler(browse JobBrowser, manage JobManager, guard *middleware.RoleGuard, pageSize int) *JobsHandler {
	return &JobsHandler{browse: browse, manage: manage, guard: guard, pageSize: pageSize}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.HandleListJobs)
	r.Get("/jobs/:id", h.HandleGetJob)

	staff := h.guard.Require(access.RouteJobsManage)
	r.Post("/jobs", staff, h.HandleCreateJob)
	r.Put("/jobs/:id", staff, h.HandleUpdateJob)
	r.Delete("/jobs/:id", staff, h.HandleDeleteJob)
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	page, size, err := parsePage(c, h.pageSize)
	if err != nil {
		return err
	}

	criteria := search.JobCriteria{
		Query:          c.Query("q"),
		EmploymentType: c.Query("employment_type"),
		Status:         c.Query("status"),
		Salary:         search.ParseSalaryRange(c.Query("salary")),
	}

	s := middleware.SessionFrom(c)
	pg, err := h.browse.Browse(requestContext(c, s), s, criteria, page, size)
	if err != nil {
		return mapUsecaseError(err, usecase.OpLoadJobs)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(pg))
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	j, err := h.browse.Get(requestContext(c, s), s, c.Params("id"))
	if err != nil {
		return mapUsecaseError(err, usecase.OpLoadJob)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobOfferResponse(j))
}

func (h *JobsHandler) HandleCreateJob(c fiber.Ctx) error {
	var req dto.JobOfferRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	s := middleware.SessionFrom(c)
	created, err := h.manage.Create(requestContext(c, s), s, req.ToDomain())
	if err != nil {
		return mapUsecaseError(err, usecase.OpCreateJob)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewJobOfferResponse(created))
}

func (h *JobsHandler) HandleUpdateJob(c fiber.Ctx) error {
	var req dto.JobOfferRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	s := middleware.SessionFrom(c)
	updated, err := h.manage.Update(requestContext(c, s), s, c.Params("id"), req.ToDomain())
	if err != nil {
		return mapUsecaseError(err, usecase.OpUpdateJob)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobOfferResponse(updated))
}

func (h *JobsHandler) HandleDeleteJob(c fiber.Ctx) error {
	reason, err := reasonFrom(c)
	if err != nil {
		return err
	}

	s := middleware.SessionFrom(c)
	if err := h.manage.Delete(requestContext(c, s), s, c.Params("id"), reason, confirmed(c)); err != nil {
		return mapUsecaseError(err, usecase.OpDeleteJob)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
