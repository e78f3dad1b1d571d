package search

import (
	"strings"

	"hire-portal/internal/access"
	"hire-portal/internal/domain/job"
)

type JobCriteria struct {
	Query          string
	EmploymentType string
	Status         string
	Salary         SalaryRange
}

func (c JobCriteria) Active() bool {
	return strings.TrimSpace(c.Query) != "" || !Unset(c.EmploymentType) || !Unset(c.Status) ||
		(c.Salary != "" && c.Salary != SalaryAny)
}

func (c JobCriteria) Predicates() []Predicate[job.JobOffer] {
	return []Predicate[job.JobOffer]{
		JobText(c.Query),
		JobEmploymentType(c.EmploymentType),
		JobStatus(c.Status),
		JobSalary(c.Salary),
	}
}

func JobText(query string) Predicate[job.JobOffer] {
	return func(j job.JobOffer) bool {
		return MatchText(query, j.Title, j.Location, j.Description, j.EmploymentType, j.JobStatus)
	}
}

func JobEmploymentType(filter string) Predicate[job.JobOffer] {
	return func(j job.JobOffer) bool {
		return MatchCategory(filter, j.EmploymentType)
	}
}

func JobStatus(filter string) Predicate[job.JobOffer] {
	return func(j job.JobOffer) bool {
		return MatchCategory(filter, j.JobStatus)
	}
}

func JobSalary(r SalaryRange) Predicate[job.JobOffer] {
	return func(j job.JobOffer) bool {
		return r.Matches(j.MinSalary, j.MaxSalary)
	}
}

// VisibleTo restricts non-privileged viewers to published offers.
func VisibleTo(s access.Session) Predicate[job.JobOffer] {
	privileged := s.Privileged()
	return func(j job.JobOffer) bool {
		return privileged || j.Published()
	}
}

// FilterJobs applies the user's criteria and then the visibility overlay.
func FilterJobs(jobs []job.JobOffer, c JobCriteria, s access.Session) []job.JobOffer {
	return Filter(jobs, And(c.Predicates()...), VisibleTo(s))
}

// JobOptions lists the distinct employment types and statuses in jobs.
func JobOptions(jobs []job.JobOffer) (employmentTypes, statuses []string) {
	types := make([]string, 0, len(jobs))
	sts := make([]string, 0, len(jobs))
	for _, j := range jobs {
		types = append(types, j.EmploymentType)
		sts = append(sts, j.JobStatus)
	}
	return UniqueNonEmpty(types), UniqueNonEmpty(sts)
}
