package dto

import "hire-portal/internal/domain/job"

type RequirementRequest struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Weight      *float64 `json:"weight"`
	MinYears    *int     `json:"min_years"`
	MaxYears    *int     `json:"max_years"`
}

type JobOfferRequest struct {
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Location       string               `json:"location"`
	MinSalary      *float64             `json:"min_salary"`
	MaxSalary      *float64             `json:"max_salary"`
	EmploymentType string               `json:"employment_type"`
	JobStatus      string               `json:"job_status"`
	Requirements   []RequirementRequest `json:"requirements"`
}

func (r JobOfferRequest) ToDomain() job.JobOffer {
	reqs := make([]job.Requirement, 0, len(r.Requirements))
	for _, it := range r.Requirements {
		reqs = append(reqs, job.Requirement{
			ID:          it.ID,
			Category:    job.Category(it.Category),
			Description: it.Description,
			Weight:      it.Weight,
			MinYears:    it.MinYears,
			MaxYears:    it.MaxYears,
		})
	}
	return job.JobOffer{
		Title:          r.Title,
		Description:    r.Description,
		Location:       r.Location,
		MinSalary:      r.MinSalary,
		MaxSalary:      r.MaxSalary,
		EmploymentType: r.EmploymentType,
		JobStatus:      r.JobStatus,
		Requirements:   reqs,
	}
}

// ReasonRequest is the optional body of destructive admin actions.
type ReasonRequest struct {
	Reason string `json:"reason"`
}
