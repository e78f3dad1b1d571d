package usecase

import (
	"context"
	"log"
	"net/http"
	"strings"

	"hire-portal/internal/access"
	"hire-portal/internal/domain/application"
	"hire-portal/internal/infrastructure/backend"
	"hire-portal/internal/pager"
	"hire-portal/internal/validation"
)

type ApplicationPage struct {
	Items []application.Record
	Meta  pager.Meta
}

type ApplicationReview struct {
	apps   ApplicationGateway
	logger *log.Logger
}

func NewApplicationReview(apps ApplicationGateway, logger *log.Logger) *ApplicationReview {
	return &ApplicationReview{apps: apps, logger: logger}
}

// List returns one server-side page. The gateway's page envelope is
// authoritative; only the window is computed here.
func (u *ApplicationReview) List(ctx context.Context, s access.Session, f application.ListFilter, pageIndex, size int) (ApplicationPage, error) {
	if u == nil || u.apps == nil {
		return ApplicationPage{}, ErrInternal
	}
	if !s.Privileged() {
		return ApplicationPage{}, ErrForbidden
	}
	if size <= 0 {
		size = pager.DefaultSize
	}
	if pageIndex < 0 {
		pageIndex = 0
	}

	f = normalizeFilter(f)
	resp, err := u.apps.ListApplicationsPaged(ctx, f, pageIndex, size)
	if err != nil {
		return ApplicationPage{}, remote(OpLoadApplications, err)
	}

	total := resp.TotalPages
	if total < 1 {
		total = 1
	}
	pageSize := resp.Size
	if pageSize <= 0 {
		pageSize = size
	}
	return ApplicationPage{
		Items: resp.Content,
		Meta:  pager.NewMeta(pager.Clamp(resp.Page, total), pageSize, total, resp.TotalElements),
	}, nil
}

// normalizeFilter trims every field and drops a status the gateway would
// reject, widening the search instead of failing it.
func normalizeFilter(f application.ListFilter) application.ListFilter {
	out := application.ListFilter{
		ApplicationID: strings.TrimSpace(f.ApplicationID),
		JobTitle:      strings.TrimSpace(f.JobTitle),
		CandidateName: strings.TrimSpace(f.CandidateName),
	}
	if st, ok := application.ParseStatus(f.Status); ok {
		out.Status = string(st)
	}
	return out
}

func (u *ApplicationReview) Get(ctx context.Context, s access.Session, id string) (application.Record, error) {
	if u == nil || u.apps == nil {
		return application.Record{}, ErrInternal
	}
	if !s.Privileged() {
		return application.Record{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return application.Record{}, ErrInvalidInput
	}
	rec, err := u.apps.GetApplication(ctx, id)
	if err != nil {
		return application.Record{}, remote(OpLoadApplication, err)
	}
	return rec, nil
}

func (u *ApplicationReview) UpdateStatus(ctx context.Context, s access.Session, id, rawStatus string) (application.Record, error) {
	if u == nil || u.apps == nil {
		return application.Record{}, ErrInternal
	}
	if !s.Privileged() {
		return application.Record{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	status, ok := application.ParseStatus(rawStatus)
	if id == "" || !ok {
		return application.Record{}, ErrInvalidInput
	}

	rec, err := u.apps.UpdateApplicationStatus(ctx, id, status)
	if err != nil {
		return application.Record{}, remote(OpUpdateStatus, err)
	}
	if u.logger != nil {
		u.logger.Printf("[Applications] Status updated id=%s status=%s by=%s", id, status, s.UserID)
	}
	return rec, nil
}

func (u *ApplicationReview) DownloadCV(ctx context.Context, s access.Session, id string) (application.CV, error) {
	if u == nil || u.apps == nil {
		return application.CV{}, ErrInternal
	}
	if !s.Privileged() {
		return application.CV{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return application.CV{}, ErrInvalidInput
	}
	cv, err := u.apps.DownloadCV(ctx, id)
	if err != nil {
		return application.CV{}, remote(OpDownloadCV, err)
	}
	return cv, nil
}

type CandidateApplications struct {
	apps   ApplicationGateway
	logger *log.Logger
}

func NewCandidateApplications(apps ApplicationGateway, logger *log.Logger) *CandidateApplications {
	return &CandidateApplications{apps: apps, logger: logger}
}

func attachment(cv *application.CV) *validation.Attachment {
	if cv == nil {
		return nil
	}
	return &validation.Attachment{FileName: cv.FileName, ContentType: cv.ContentType, Size: int64(len(cv.Data))}
}

func (u *CandidateApplications) Mine(ctx context.Context, s access.Session) ([]application.Record, error) {
	if u == nil || u.apps == nil {
		return nil, ErrInternal
	}
	if !s.Authenticated {
		return nil, ErrForbidden
	}
	recs, err := u.apps.MyApplications(ctx)
	if err != nil {
		return nil, remote(OpLoadApplications, err)
	}
	return recs, nil
}

func (u *CandidateApplications) Get(ctx context.Context, s access.Session, id string) (application.Record, error) {
	if u == nil || u.apps == nil {
		return application.Record{}, ErrInternal
	}
	if !s.Authenticated {
		return application.Record{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return application.Record{}, ErrInvalidInput
	}
	rec, err := u.apps.MyApplication(ctx, id)
	if err != nil {
		return application.Record{}, remote(OpLoadApplication, err)
	}
	return rec, nil
}

// ByJob reports the candidate's application to jobID; found is false when the
// candidate has not applied yet.
func (u *CandidateApplications) ByJob(ctx context.Context, s access.Session, jobID string) (rec application.Record, found bool, err error) {
	if u == nil || u.apps == nil {
		return application.Record{}, false, ErrInternal
	}
	if !s.Authenticated {
		return application.Record{}, false, ErrForbidden
	}
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return application.Record{}, false, ErrInvalidInput
	}
	rec, err = u.apps.MyApplicationByJob(ctx, jobID)
	if err != nil {
		if status, ok := backend.StatusOf(err); ok && status == http.StatusNotFound {
			return application.Record{}, false, nil
		}
		return application.Record{}, false, remote(OpLoadApplication, err)
	}
	return rec, true, nil
}

func (u *CandidateApplications) Apply(ctx context.Context, s access.Session, jobID, githubURL string, cv *application.CV) (application.Record, error) {
	if u == nil || u.apps == nil {
		return application.Record{}, ErrInternal
	}
	if !s.Authenticated {
		return application.Record{}, ErrForbidden
	}
	jobID = strings.TrimSpace(jobID)
	githubURL = strings.TrimSpace(githubURL)
	if err := validation.ValidateApplication(jobID, githubURL, attachment(cv)); err != nil {
		return application.Record{}, err
	}

	rec, err := u.apps.Apply(ctx, jobID, githubURL, *cv)
	if err != nil {
		return application.Record{}, remote(OpApply, err)
	}
	if u.logger != nil {
		u.logger.Printf("[Applications] Submitted id=%s job=%s candidate=%s", rec.ApplicationID, jobID, s.UserID)
	}
	return rec, nil
}

// Edit changes the GitHub URL and/or the CV while the application is still
// APPLIED.
func (u *CandidateApplications) Edit(ctx context.Context, s access.Session, id, githubURL string, cv *application.CV) (application.Record, error) {
	if u == nil || u.apps == nil {
		return application.Record{}, ErrInternal
	}
	if !s.Authenticated {
		return application.Record{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return application.Record{}, ErrInvalidInput
	}
	githubURL = strings.TrimSpace(githubURL)
	att := attachment(cv)
	if !att.Present() {
		cv = nil
	}
	if err := validation.ValidateApplicationEdit(githubURL, att); err != nil {
		return application.Record{}, err
	}

	current, err := u.apps.MyApplication(ctx, id)
	if err != nil {
		return application.Record{}, remote(OpLoadApplication, err)
	}
	if !current.Editable() {
		return application.Record{}, ErrNotEditable
	}

	rec, err := u.apps.UpdateMyApplication(ctx, id, githubURL, cv)
	if err != nil {
		return application.Record{}, remote(OpUpdateApplication, err)
	}
	return rec, nil
}

func (u *CandidateApplications) DownloadCV(ctx context.Context, s access.Session, id string) (application.CV, error) {
	if u == nil || u.apps == nil {
		return application.CV{}, ErrInternal
	}
	if !s.Authenticated {
		return application.CV{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return application.CV{}, ErrInvalidInput
	}
	cv, err := u.apps.DownloadMyCV(ctx, id)
	if err != nil {
		return application.CV{}, remote(OpDownloadCV, err)
	}
	return cv, nil
}
