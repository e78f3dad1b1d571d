package application

import "strings"

type Status string

const (
	StatusApplied        Status = "APPLIED"
	StatusUnderReview    Status = "UNDER_REVIEW"
	StatusInterviewPhase Status = "INTERVIEW_PHASE"
	StatusOffer          Status = "OFFER"
	StatusHired          Status = "HIRED"
	StatusRejected       Status = "REJECTED"
)

// Lifecycle is the canonical display order of the application timeline.
var Lifecycle = []Status{
	StatusApplied,
	StatusUnderReview,
	StatusInterviewPhase,
	StatusOffer,
	StatusHired,
	StatusRejected,
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, v := range Lifecycle {
		if s == v {
			return s, true
		}
	}
	return "", false
}

// Index returns the position of s in Lifecycle or -1.
func (s Status) Index() int {
	for i, v := range Lifecycle {
		if s == v {
			return i
		}
	}
	return -1
}

type Record struct {
	ApplicationID   string `json:"applicationId"`
	JobID           string `json:"jobId"`
	CandidateUserID string `json:"candidateUserId"`
	GithubURL       string `json:"githubUrl"`
	Status          string `json:"status"`
	AppliedAt       string `json:"appliedAt"`
	CVFileName      string `json:"cvFileName"`
	CVContentType   string `json:"cvContentType"`

	JobTitle      string `json:"jobTitle,omitempty"`
	CandidateName string `json:"candidateName,omitempty"`
}

// Editable reports whether the candidate may still change the application.
// Terminal reports whether s ends the lifecycle. No further status change is
// expected once an application is hired or rejected.
func (s Status) Terminal() bool {
	return s == StatusHired || s == StatusRejected
}

func (r Record) Editable() bool {
	return Status(r.Status) == StatusApplied
}

func (r Record) Closed() bool {
	return Status(r.Status).Terminal()
}

type ListFilter struct {
	ApplicationID string
	Status        string
	JobTitle      string
	CandidateName string
}

// CV is a downloaded attachment.
type CV struct {
	FileName    string
	ContentType string
	Data        []byte
}
