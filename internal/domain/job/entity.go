package job

import "strings"

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
)

// NormalizeStatus maps anything other than PUBLISHED to DRAFT on submission.
func NormalizeStatus(raw string) Status {
	if strings.ToUpper(strings.TrimSpace(raw)) == string(StatusPublished) {
		return StatusPublished
	}
	return StatusDraft
}

type Category string

const (
	CategorySkill         Category = "SKILL"
	CategoryExperience    Category = "EXPERIENCE"
	CategoryEducation     Category = "EDUCATION"
	CategoryCertification Category = "CERTIFICATION"
	CategoryLanguage      Category = "LANGUAGE"
)

var Categories = []Category{
	CategorySkill,
	CategoryExperience,
	CategoryEducation,
	CategoryCertification,
	CategoryLanguage,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type Requirement struct {
	ID          string   `json:"id,omitempty"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Weight      *float64 `json:"weight,omitempty"`
	MinYears    *int     `json:"minYears,omitempty"`
	MaxYears    *int     `json:"maxYears,omitempty"`
}

type JobOffer struct {
	ID             string        `json:"id,omitempty"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Location       string        `json:"location"`
	MinSalary      *float64      `json:"minSalary,omitempty"`
	MaxSalary      *float64      `json:"maxSalary,omitempty"`
	EmploymentType string        `json:"employmentType,omitempty"`
	JobStatus      string        `json:"jobStatus,omitempty"`
	Requirements   []Requirement `json:"requirements,omitempty"`
}

func (j JobOffer) Published() bool {
	return j.JobStatus == string(StatusPublished)
}

// Trimmed returns the submission form of the offer: trimmed text fields and a
// normalised status.
func (j JobOffer) Trimmed() JobOffer {
	out := j
	out.Title = strings.TrimSpace(j.Title)
	out.Description = strings.TrimSpace(j.Description)
	out.Location = strings.TrimSpace(j.Location)
	out.EmploymentType = strings.TrimSpace(j.EmploymentType)
	out.JobStatus = string(NormalizeStatus(j.JobStatus))
	if len(j.Requirements) > 0 {
		out.Requirements = make([]Requirement, len(j.Requirements))
		for i, r := range j.Requirements {
			r.Description = strings.TrimSpace(r.Description)
			r.Category = Category(strings.ToUpper(strings.TrimSpace(string(r.Category))))
			out.Requirements[i] = r
		}
	}
	return out
}
