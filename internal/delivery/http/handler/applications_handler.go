package handler

import (
	"context"
	"io"
	"strings"

	"hire-portal/internal/access"
	"hire-portal/internal/delivery/http/dto"
	"hire-portal/internal/delivery/http/middleware"
	"hire-portal/internal/domain/application"
	"hire-portal/internal/pkg/response"
	"hire-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const maxCVBytes = 5 << 20

type ApplicationReviewer interface {
	List(ctx context.Context, s access.Session, f application.ListFilter, pageIndex, size int) (usecase.ApplicationPage, error)
	Get(ctx context.Context, s access.Session, id string) (application.Record, error)
	UpdateStatus(ctx context.Context, s access.Session, id, rawStatus string) (application.Record, error)
	DownloadCV(ctx context.Context, s access.Session, id string) (application.CV, error)
}

type CandidateApplier interface {
	Mine(ctx context.Context, s access.Session) ([]application.Record, error)
	Get(ctx context.Context, s access.Session, id string) (application.Record, error)
	ByJob(ctx context.Context, s access.Session, jobID string) (application.Record, bool, error)
	Apply(ctx context.Context, s access.Session, jobID, githubURL string, cv *application.CV) (application.Record, error)
	Edit(ctx context.Context, s access.Session, id, githubURL string, cv *application.CV) (application.Record, error)
	DownloadCV(ctx context.Context, s access.Session, id string) (application.CV, error)
}

type ApplicationsHandler struct {
	review   ApplicationReviewer
	mine     CandidateApplier
	guard    *middleware.RoleGuard
	pageSize int
}

func NewApplicationsHandler(review ApplicationReviewer, mine CandidateApplier, guard *middleware.RoleGuard, pageSize int) *ApplicationsHandler {
	return &ApplicationsHandler{review: review, mine: mine, guard: guard, pageSize: pageSize}
}

// RegisterRoutes mounts candidate routes before the staff ones so that
// "/applications/me" is never read as an application id.
func (h *ApplicationsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	candidate := h.guard.Require(access.RouteApplicationsMine)
	r.Get("/applications/me", candidate, h.HandleMine)
	r.Get("/applications/me/by-job/:jobId", candidate, h.HandleMineByJob)
	r.Get("/applications/me/:id", candidate, h.HandleMineGet)
	r.Get("/applications/me/:id/cv", candidate, h.HandleMineCV)
	r.Patch("/applications/me/:id", candidate, h.HandleMineEdit)
	r.Post("/applications", candidate, h.HandleApply)

	staff := h.guard.Require(access.RouteApplicationsReview)
	r.Get("/applications", staff, h.HandleList)
	r.Get("/applications/:id", staff, h.HandleGet)
	r.Patch("/applications/:id/status", staff, h.HandleUpdateStatus)
	r.Get("/applications/:id/cv", staff, h.HandleDownloadCV)
}

func (h *ApplicationsHandler) HandleList(c fiber.Ctx) error {
	page, size, err := parsePage(c, h.pageSize)
	if err != nil {
		return err
	}
	f := application.ListFilter{
		ApplicationID: c.Query("application_id"),
		Status:        c.Query("status"),
		JobTitle:      c.Query("job_title"),
		CandidateName: c.Query("candidate_name"),
	}

	s := middleware.SessionFrom(c)
	pg, err := h.review.List(requestContext(c, s), s, f, page, size)
	if err != nil {
		return mapUsecaseError(err, usecase.OpLoadApplications)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(pg))
}

func (h *ApplicationsHandler) HandleGet(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	rec, err := h.review.Get(requestContext(c, s), s, c.Params("id"))
	if err != nil {
		return mapUsecaseError(err, usecase.OpLoadApplication)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(rec))
}

func (h *ApplicationsHandler) HandleUpdateStatus(c fiber.Ctx) error {
	status := c.Query("status")
	if len(c.Body()) > 0 {
		var req dto.StatusUpdateRequest
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
		}
		if strings.TrimSpace(req.Status) != "" {
			status = req.Status
		}
	}

	s := middleware.SessionFrom(c)
	rec, err := h.review.UpdateStatus(requestContext(c, s), s, c.Params("id"), status)
	if err != nil {
		return mapUsecaseError(err, usecase.OpUpdateStatus)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(rec))
}

func (h *ApplicationsHandler) HandleDownloadCV(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	cv, err := h.review.DownloadCV(requestContext(c, s), s, c.Params("id"))
	if err != nil {
		return mapUsecaseError(err, usecase.OpDownloadCV)
	}
	return response.Attachment(c, cv.FileName, cv.ContentType, cv.Data)
}

func (h *ApplicationsHandler) HandleMine(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	recs, err := h.mine.Mine(requestContext(c, s), s)
	if err != nil {
		return mapUsecaseError(err, usecase.OpLoadApplications)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationList(recs))
}

func (h *ApplicationsHandler) HandleMineGet(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	rec, err := h.mine.Get(requestContext(c, s), s, c.Params("id"))
	if err != nil {
		return mapUsecaseError(err, usecase.OpLoadApplication)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(rec))
}

func (h *ApplicationsHandler) HandleMineByJob(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	rec, found, err := h.mine.ByJob(requestContext(c, s), s, c.Params("jobId"))
	if err != nil {
		return mapUsecaseError(err, usecase.OpLoadApplication)
	}
	out := dto.ApplicationByJobResponse{Applied: found}
	if found {
		r := dto.NewApplicationResponse(rec)
		out.Application = &r
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationsHandler) HandleMineCV(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	cv, err := h.mine.DownloadCV(requestContext(c, s), s, c.Params("id"))
	if err != nil {
		return mapUsecaseError(err, usecase.OpDownloadCV)
	}
	return response.Attachment(c, cv.FileName, cv.ContentType, cv.Data)
}

func (h *ApplicationsHandler) HandleApply(c fiber.Ctx) error {
	cv, err := readCV(c)
	if err != nil {
		return err
	}

	s := middleware.SessionFrom(c)
	rec, err := h.mine.Apply(requestContext(c, s), s, c.FormValue("jobId"), c.FormValue("githubUrl"), cv)
	if err != nil {
		return mapUsecaseError(err, usecase.OpApply)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewApplicationResponse(rec))
}

func (h *ApplicationsHandler) HandleMineEdit(c fiber.Ctx) error {
	cv, err := readCV(c)
	if err != nil {
		return err
	}

	s := middleware.SessionFrom(c)
	rec, err := h.mine.Edit(requestContext(c, s), s, c.Params("id"), c.FormValue("githubUrl"), cv)
	if err != nil {
		return mapUsecaseError(err, usecase.OpUpdateApplication)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(rec))
}

// readCV returns the uploaded "cv" part, or nil when none was sent.
func readCV(c fiber.Ctx) (*application.CV, error) {
	fh, err := c.FormFile("cv")
	if err != nil || fh == nil {
		return nil, nil
	}
	if fh.Size > maxCVBytes {
		return nil, middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "CV file is too large.", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid CV upload", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxCVBytes+1))
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid CV upload", nil, err)
	}
	if len(data) > maxCVBytes {
		return nil, middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "CV file is too large.", nil, nil)
	}

	return &application.CV{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
