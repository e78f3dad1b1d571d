package dto

import (
	"hire-portal/internal/domain/application"
	"hire-portal/internal/pager"
	"hire-portal/internal/usecase"
	"hire-portal/internal/viewmodel"
)

type ApplicationResponse struct {
	ApplicationID   string           `json:"application_id"`
	JobID           string           `json:"job_id"`
	JobTitle        string           `json:"job_title,omitempty"`
	CandidateUserID string           `json:"candidate_user_id"`
	CandidateName   string           `json:"candidate_name,omitempty"`
	GithubURL       string           `json:"github_url"`
	Status          string           `json:"status"`
	Badge           string           `json:"badge"`
	StatusClass     string           `json:"status_class"`
	AppliedAt       string           `json:"applied_at"`
	CVFileName      string           `json:"cv_file_name"`
	CVContentType   string           `json:"cv_content_type"`
	Editable        bool             `json:"editable"`
	Closed          bool             `json:"closed"`
	Timeline        []viewmodel.Step `json:"timeline"`
}

type ApplicationListResponse struct {
	Items    []ApplicationResponse `json:"items"`
	Meta     pager.Meta            `json:"meta"`
	Statuses []string              `json:"statuses"`
}

type ApplicationByJobResponse struct {
	Applied     bool                 `json:"applied"`
	Application *ApplicationResponse `json:"application"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

func NewApplicationResponse(r application.Record) ApplicationResponse {
	badge := viewmodel.BadgeText(r.Status)
	return ApplicationResponse{
		ApplicationID:   r.ApplicationID,
		JobID:           r.JobID,
		JobTitle:        r.JobTitle,
		CandidateUserID: r.CandidateUserID,
		CandidateName:   r.CandidateName,
		GithubURL:       r.GithubURL,
		Status:          r.Status,
		Badge:           badge,
		StatusClass:     viewmodel.StatusClass(badge),
		AppliedAt:       r.AppliedAt,
		CVFileName:      r.CVFileName,
		CVContentType:   r.CVContentType,
		Editable:        r.Editable(),
		Closed:          r.Closed(),
		Timeline:        viewmodel.Timeline(r.Status),
	}
}

func NewApplicationList(recs []application.Record) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, NewApplicationResponse(r))
	}
	return out
}

func NewApplicationListResponse(pg usecase.ApplicationPage) ApplicationListResponse {
	statuses := make([]string, 0, len(application.Lifecycle))
	for _, s := range application.Lifecycle {
		statuses = append(statuses, string(s))
	}
	return ApplicationListResponse{
		Items:    NewApplicationList(pg.Items),
		Meta:     pg.Meta,
		Statuses: statuses,
	}
}
