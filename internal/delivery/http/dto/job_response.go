package dto

import (
	"hire-portal/internal/domain/job"
	"hire-portal/internal/pager"
	"hire-portal/internal/search"
	"hire-portal/internal/usecase"
	"hire-portal/internal/viewmodel"
)

type RequirementResponse struct {
	ID          string   `json:"id,omitempty"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Weight      *float64 `json:"weight,omitempty"`
	MinYears    *int     `json:"min_years,omitempty"`
	MaxYears    *int     `json:"max_years,omitempty"`
}

type JobOfferResponse struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Location       string                `json:"location"`
	MinSalary      *float64              `json:"min_salary"`
	MaxSalary      *float64              `json:"max_salary"`
	SalaryText     string                `json:"salary_text"`
	EmploymentType string                `json:"employment_type"`
	JobStatus      string                `json:"job_status"`
	Badge          string                `json:"badge"`
	StatusClass    string                `json:"status_class"`
	Requirements   []RequirementResponse `json:"requirements"`
}

type JobListResponse struct {
	Items           []JobOfferResponse `json:"items"`
	Meta            pager.Meta         `json:"meta"`
	EmploymentTypes []string           `json:"employment_types"`
	Statuses        []string           `json:"statuses"`
	SalaryRanges    []string           `json:"salary_ranges"`

	HasActiveFilters bool `json:"has_active_filters"`
}

func NewJobOfferResponse(j job.JobOffer) JobOfferResponse {
	reqs := make([]RequirementResponse, 0, len(j.Requirements))
	for _, r := range j.Requirements {
		reqs = append(reqs, RequirementResponse{
			ID:          r.ID,
			Category:    string(r.Category),
			Description: r.Description,
			Weight:      r.Weight,
			MinYears:    r.MinYears,
			MaxYears:    r.MaxYears,
		})
	}
	badge := viewmodel.BadgeText(j.JobStatus)
	return JobOfferResponse{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		Location:       j.Location,
		MinSalary:      j.MinSalary,
		MaxSalary:      j.MaxSalary,
		SalaryText:     viewmodel.SalaryText(j.MinSalary, j.MaxSalary),
		EmploymentType: j.EmploymentType,
		JobStatus:      j.JobStatus,
		Badge:          badge,
		StatusClass:    viewmodel.StatusClass(badge),
		Requirements:   reqs,
	}
}

func NewJobListResponse(pg usecase.JobPage) JobListResponse {
	items := make([]JobOfferResponse, 0, len(pg.Items))
	for _, j := range pg.Items {
		items = append(items, NewJobOfferResponse(j))
	}
	ranges := make([]string, 0, len(search.SalaryRanges))
	for _, r := range search.SalaryRanges {
		ranges = append(ranges, string(r))
	}
	return JobListResponse{
		Items:           items,
		Meta:            pg.Meta,
		EmploymentTypes: nonNil(pg.EmploymentTypes),
		Statuses:        nonNil(pg.Statuses),
		SalaryRanges:    ranges,

		HasActiveFilters: pg.HasActiveFilters,
	}
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
