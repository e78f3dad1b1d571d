package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"hire-portal/internal/access"
	"hire-portal/internal/audit"
	"hire-portal/internal/domain/adminuser"
	"hire-portal/internal/domain/application"
	"hire-portal/internal/domain/job"
	"hire-portal/internal/domain/page"
	"hire-portal/internal/domain/profile"
	"hire-portal/internal/domain/role"
	"hire-portal/internal/infrastructure/backend"
)

func session(id string, roles ...role.Role) access.Session {
	return access.Session{Authenticated: true, UserID: id, Roles: role.NewSet(roles...)}
}

func httpErr(status int) error {
	return &backend.Error{StatusCode: status, Endpoint: "http://backend.test"}
}

func f64(v float64) *float64 { return &v }

type fakeJobs struct {
	items   []job.JobOffer
	err     error
	calls   int
	created job.JobOffer
	deleted string
}

func (f *fakeJobs) ListJobs(context.Context) ([]job.JobOffer, error) {
	f.calls++
	return f.items, f.err
}

func (f *fakeJobs) GetJob(_ context.Context, id string) (job.JobOffer, error) {
	if f.err != nil {
		return job.JobOffer{}, f.err
	}
	for _, j := range f.items {
		if j.ID == id {
			return j, nil
		}
	}
	return job.JobOffer{}, httpErr(404)
}

func (f *fakeJobs) CreateJob(_ context.Context, offer job.JobOffer) (job.JobOffer, error) {
	if f.err != nil {
		return job.JobOffer{}, f.err
	}
	offer.ID = "new"
	f.created = offer
	return offer, nil
}

func (f *fakeJobs) UpdateJob(_ context.Context, _ string, offer job.JobOffer) (job.JobOffer, error) {
	return offer, f.err
}

func (f *fakeJobs) DeleteJob(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = id
	return nil
}

type fakeApps struct {
	paged     page.Response[application.Record]
	lastQuery application.ListFilter
	records   map[string]application.Record
	byJobErr  error
	err       error
	updated   bool
	applied   bool
}

func (f *fakeApps) ListApplicationsPaged(_ context.Context, q application.ListFilter, _, _ int) (page.Response[application.Record], error) {
	f.lastQuery = q
	return f.paged, f.err
}

func (f *fakeApps) GetApplication(_ context.Context, id string) (application.Record, error) {
	return f.record(id)
}

func (f *fakeApps) UpdateApplicationStatus(_ context.Context, id string, status application.Status) (application.Record, error) {
	rec, err := f.record(id)
	rec.Status = string(status)
	return rec, err
}

func (f *fakeApps) DownloadCV(context.Context, string) (application.CV, error) {
	return application.CV{FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}, f.err
}

func (f *fakeApps) MyApplications(context.Context) ([]application.Record, error) {
	out := make([]application.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, f.err
}

func (f *fakeApps) MyApplication(_ context.Context, id string) (application.Record, error) {
	return f.record(id)
}

func (f *fakeApps) MyApplicationByJob(_ context.Context, jobID string) (application.Record, error) {
	if f.byJobErr != nil {
		return application.Record{}, f.byJobErr
	}
	for _, r := range f.records {
		if r.JobID == jobID {
			return r, nil
		}
	}
	return application.Record{}, httpErr(404)
}

func (f *fakeApps) Apply(_ context.Context, jobID, githubURL string, _ application.CV) (application.Record, error) {
	if f.err != nil {
		return application.Record{}, f.err
	}
	f.applied = true
	return application.Record{ApplicationID: "a-new", JobID: jobID, GithubURL: githubURL, Status: string(application.StatusApplied)}, nil
}

func (f *fakeApps) UpdateMyApplication(_ context.Context, id, githubURL string, _ *application.CV) (application.Record, error) {
	rec, err := f.record(id)
	if err != nil {
		return rec, err
	}
	f.updated = true
	if githubURL != "" {
		rec.GithubURL = githubURL
	}
	return rec, nil
}

func (f *fakeApps) DownloadMyCV(ctx context.Context, id string) (application.CV, error) {
	return f.DownloadCV(ctx, id)
}

func (f *fakeApps) record(id string) (application.Record, error) {
	if f.err != nil {
		return application.Record{}, f.err
	}
	rec, ok := f.records[id]
	if !ok {
		return application.Record{}, httpErr(404)
	}
	return rec, nil
}

type fakeUsers struct {
	rows      []adminuser.Row
	roles     []string
	err       error
	listCalls int
	blocked   string
	unblocked string
	deleted   string
	update    adminuser.RolesUpdate
}

func (f *fakeUsers) ListUsers(_ context.Context, _, max int, search string) ([]adminuser.Row, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]adminuser.Row, 0, len(f.rows))
	for _, r := range f.rows {
		if search == "" || strings.Contains(strings.ToLower(r.Username), strings.ToLower(search)) {
			out = append(out, r.Normalize())
		}
		if len(out) == max {
			break
		}
	}
	return out, nil
}

func (f *fakeUsers) GetUser(_ context.Context, id string) (adminuser.Row, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r.Normalize(), nil
		}
	}
	return adminuser.Row{}, httpErr(404)
}

func (f *fakeUsers) UserRoles(context.Context, string) ([]string, error) { return f.roles, f.err }

func (f *fakeUsers) AllowedRoles(context.Context) ([]string, error) {
	return []string{"ADMIN", "CANDIDATE", "RECRUITER"}, f.err
}

func (f *fakeUsers) UpdateUserRoles(_ context.Context, _ string, upd adminuser.RolesUpdate) error {
	f.update = upd
	return f.err
}

func (f *fakeUsers) BlockUser(_ context.Context, id, _ string) error {
	f.blocked = id
	return f.err
}

func (f *fakeUsers) UnblockUser(_ context.Context, id, _ string) error {
	f.unblocked = id
	return f.err
}

func (f *fakeUsers) DeleteUser(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

type fakeAccount struct {
	acc     profile.Account
	saved   *profile.Account
	err     error
	saveErr error
}

func (f *fakeAccount) GetAccount(context.Context) (profile.Account, error) { return f.acc, f.err }

func (f *fakeAccount) UpdateAccount(_ context.Context, acc profile.Account) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = &acc
	return nil
}

// memCache is an in-memory ListCache.
type memCache struct {
	mu               sync.Mutex
	data             map[string][]byte
	jobsInvalidated  int
	usersInvalidated int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = b
	c.mu.Unlock()
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = []byte(value)
	return true, nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
	return nil
}

func (c *memCache) InvalidateJobs(context.Context) error {
	c.mu.Lock()
	c.data = map[string][]byte{}
	c.jobsInvalidated++
	c.mu.Unlock()
	return nil
}

func (c *memCache) InvalidateUsers(context.Context) error {
	c.mu.Lock()
	c.data = map[string][]byte{}
	c.usersInvalidated++
	c.mu.Unlock()
	return nil
}

type fakePublisher struct {
	events []audit.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e audit.Event) error {
	p.events = append(p.events, e)
	return p.err
}

type fakeNotifier struct{ sources []string }

func (n *fakeNotifier) NotifyJobsUpdated(source string) { n.sources = append(n.sources, source) }
