package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"hire-portal/internal/access"
	"hire-portal/internal/audit"
	"hire-portal/internal/domain/job"
	"hire-portal/internal/pager"
	"hire-portal/internal/search"
	"hire-portal/internal/validation"
)

type JobPage struct {
	Items           []job.JobOffer
	Meta            pager.Meta
	EmploymentTypes []string
	Statuses        []string

	HasActiveFilters bool
}

type JobBrowse struct {
	jobs   JobGateway
	cache  ListCache
	ttl    time.Duration
	logger *log.Logger
}

func NewJobBrowse(jobs JobGateway, cache ListCache, ttl time.Duration, logger *log.Logger) *JobBrowse {
	return &JobBrowse{jobs: jobs, cache: cache, ttl: ttl, logger: logger}
}

// Browse loads every offer, applies the viewer's criteria and the visibility
// overlay, then returns the requested page. Option lists are built from the
// offers the viewer may see, before criteria are applied.
func (u *JobBrowse) Browse(ctx context.Context, s access.Session, c search.JobCriteria, pageIndex, size int) (JobPage, error) {
	if u == nil || u.jobs == nil {
		return JobPage{}, ErrInternal
	}
	if size <= 0 {
		size = pager.DefaultSize
	}
	if pageIndex < 0 {
		pageIndex = 0
	}

	all, err := cachedList(ctx, u.cache, u.logger, "Jobs", JobsCacheKey(s.Privileged()), u.ttl, u.jobs.ListJobs)
	if err != nil {
		return JobPage{}, remote(OpLoadJobs, err)
	}

	visible := search.Filter(all, search.VisibleTo(s))
	types, statuses := search.JobOptions(visible)

	filtered := search.FilterJobs(all, c, s)
	items, idx := pager.Slice(filtered, pageIndex, size)
	total := pager.TotalPages(len(filtered), size)

	return JobPage{
		Items:           items,
		Meta:            pager.NewMeta(idx, size, total, int64(len(filtered))),
		EmploymentTypes: types,
		Statuses:        statuses,

		HasActiveFilters: c.Active(),
	}, nil
}

// Get returns one offer. Drafts are reported as missing to non-staff viewers.
func (u *JobBrowse) Get(ctx context.Context, s access.Session, id string) (job.JobOffer, error) {
	if u == nil || u.jobs == nil {
		return job.JobOffer{}, ErrInternal
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return job.JobOffer{}, ErrInvalidInput
	}
	j, err := u.jobs.GetJob(ctx, id)
	if err != nil {
		return job.JobOffer{}, remote(OpLoadJob, err)
	}
	if !s.Privileged() && !j.Published() {
		return job.JobOffer{}, ErrNotFound
	}
	return j, nil
}

type JobManage struct {
	jobs     JobGateway
	cache    ListCache
	audit    AuditPublisher
	notifier JobsNotifier
	logger   *log.Logger
}

func NewJobManage(jobs JobGateway, cache ListCache, pub AuditPublisher, notifier JobsNotifier, logger *log.Logger) *JobManage {
	return &JobManage{jobs: jobs, cache: cache, audit: pub, notifier: notifier, logger: logger}
}

func (u *JobManage) Create(ctx context.Context, s access.Session, offer job.JobOffer) (job.JobOffer, error) {
	if u == nil || u.jobs == nil {
		return job.JobOffer{}, ErrInternal
	}
	if !s.Privileged() {
		return job.JobOffer{}, ErrForbidden
	}
	offer = offer.Trimmed()
	offer.ID = ""
	if err := validation.ValidateJobOffer(offer); err != nil {
		return job.JobOffer{}, err
	}

	created, err := u.jobs.CreateJob(ctx, offer)
	if err != nil {
		return job.JobOffer{}, remote(OpCreateJob, err)
	}
	u.changed(ctx, "create")
	return created, nil
}

func (u *JobManage) Update(ctx context.Context, s access.Session, id string, offer job.JobOffer) (job.JobOffer, error) {
	if u == nil || u.jobs == nil {
		return job.JobOffer{}, ErrInternal
	}
	if !s.Privileged() {
		return job.JobOffer{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return job.JobOffer{}, ErrInvalidInput
	}
	offer = offer.Trimmed()
	offer.ID = id
	if err := validation.ValidateJobOffer(offer); err != nil {
		return job.JobOffer{}, err
	}

	updated, err := u.jobs.UpdateJob(ctx, id, offer)
	if err != nil {
		return job.JobOffer{}, remote(OpUpdateJob, err)
	}
	u.changed(ctx, "update")
	return updated, nil
}

// Delete removes an offer. The request must carry an explicit confirmation.
func (u *JobManage) Delete(ctx context.Context, s access.Session, id, reason string, confirmed bool) error {
	if u == nil || u.jobs == nil {
		return ErrInternal
	}
	if !s.Privileged() {
		return ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := u.jobs.DeleteJob(ctx, id); err != nil {
		return remote(OpDeleteJob, err)
	}

	publish(ctx, u.audit, u.logger, audit.NewJobEvent(audit.JobDelete, actorOf(s), id, reason))
	u.changed(ctx, "delete")
	return nil
}

func (u *JobManage) changed(ctx context.Context, source string) {
	if u.cache != nil {
		if err := u.cache.InvalidateJobs(ctx); err != nil && u.logger != nil {
			u.logger.Printf("[Jobs] Cache invalidation failed: %v", err)
		}
	}
	if u.notifier != nil {
		u.notifier.NotifyJobsUpdated(source)
	}
}

func actorOf(s access.Session) audit.Actor {
	return audit.Actor{UserID: s.UserID, Roles: s.Roles.Slice()}
}

// publish never fails the calling action; audit delivery is best effort.
func publish(ctx context.Context, p AuditPublisher, logger *log.Logger, e audit.Event) {
	if p == nil {
		return
	}
	if e.CorrelationID == "" {
		e.CorrelationID = audit.CorrelationID(ctx)
	}
	if err := p.Publish(ctx, e); err != nil && logger != nil {
		logger.Printf("[Audit] Publish failed type=%s target=%s: %v", e.EventType, e.Target.ID, err)
	}
}
