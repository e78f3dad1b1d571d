package usecase

import (
	"context"
	"time"

	"hire-portal/internal/audit"
	"hire-portal/internal/domain/adminuser"
	"hire-portal/internal/domain/application"
	"hire-portal/internal/domain/job"
	"hire-portal/internal/domain/page"
	"hire-portal/internal/domain/profile"
)

type JobGateway interface {
	ListJobs(ctx context.Context) ([]job.JobOffer, error)
	GetJob(ctx context.Context, id string) (job.JobOffer, error)
	CreateJob(ctx context.Context, offer job.JobOffer) (job.JobOffer, error)
	UpdateJob(ctx context.Context, id string, offer job.JobOffer) (job.JobOffer, error)
	DeleteJob(ctx context.Context, id string) error
}

type ApplicationGateway interface {
	ListApplicationsPaged(ctx context.Context, f application.ListFilter, pageIndex, size int) (page.Response[application.Record], error)
	GetApplication(ctx context.Context, id string) (application.Record, error)
	UpdateApplicationStatus(ctx context.Context, id string, status application.Status) (application.Record, error)
	DownloadCV(ctx context.Context, id string) (application.CV, error)

	MyApplications(ctx context.Context) ([]application.Record, error)
	MyApplication(ctx context.Context, id string) (application.Record, error)
	MyApplicationByJob(ctx context.Context, jobID string) (application.Record, error)
	Apply(ctx context.Context, jobID, githubURL string, cv application.CV) (application.Record, error)
	UpdateMyApplication(ctx context.Context, id, githubURL string, cv *application.CV) (application.Record, error)
	DownloadMyCV(ctx context.Context, id string) (application.CV, error)
}

type AdminUserGateway interface {
	ListUsers(ctx context.Context, first, max int, search string) ([]adminuser.Row, error)
	GetUser(ctx context.Context, id string) (adminuser.Row, error)
	UserRoles(ctx context.Context, id string) ([]string, error)
	AllowedRoles(ctx context.Context) ([]string, error)
	UpdateUserRoles(ctx context.Context, id string, upd adminuser.RolesUpdate) error
	BlockUser(ctx context.Context, id, reason string) error
	UnblockUser(ctx context.Context, id, reason string) error
	DeleteUser(ctx context.Context, id string) error
}

type AccountGateway interface {
	GetAccount(ctx context.Context) (profile.Account, error)
	UpdateAccount(ctx context.Context, acc profile.Account) error
}

// ListCache stores fetched lists between requests. Implementations fail open.
type ListCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	InvalidateJobs(ctx context.Context) error
	InvalidateUsers(ctx context.Context) error
}

type AuditPublisher interface {
	Publish(ctx context.Context, e audit.Event) error
}

// JobsNotifier tells live-search clients that job data changed.
type JobsNotifier interface {
	NotifyJobsUpdated(source string)
}
