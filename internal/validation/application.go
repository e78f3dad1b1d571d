package validation

import (
	"regexp"
	"strings"
)

const PDFContentType = "application/pdf"

var githubURLRe = regexp.MustCompile(`(?i)^https?://.+`)

// ValidateCV accepts a PDF identified either by MIME type or by file name.
func ValidateCV(fileName, contentType string) error {
	if blank(fileName) && blank(contentType) {
		return newError("cv", "CV file is required.")
	}
	if strings.EqualFold(strings.TrimSpace(contentType), PDFContentType) {
		return nil
	}
	if strings.HasSuffix(strings.ToLower(strings.TrimSpace(fileName)), ".pdf") {
		return nil
	}
	return newError("cv", "Only PDF files are allowed.")
}

func ValidateGithubURL(raw string) error {
	v := strings.TrimSpace(raw)
	if v == "" {
		return newError("githubUrl", "GitHub URL is required.")
	}
	if !githubURLRe.MatchString(v) {
		return newError("githubUrl", "GitHub URL must start with http:// or https://.")
	}
	return nil
}

// Attachment describes an uploaded file before it is forwarded.
type Attachment struct {
	FileName    string
	ContentType string
	Size        int64
}

func (a *Attachment) Present() bool {
	return a != nil && (a.FileName != "" || a.Size > 0)
}

// ValidateApplication checks a new application: both a GitHub URL and a PDF CV
// are mandatory.
func ValidateApplication(jobID, githubURL string, cv *Attachment) error {
	if blank(jobID) {
		return newError("jobId", "Job is required.")
	}
	if err := ValidateGithubURL(githubURL); err != nil {
		return err
	}
	if !cv.Present() {
		return newError("cv", "CV file is required.")
	}
	return ValidateCV(cv.FileName, cv.ContentType)
}

// ValidateApplicationEdit allows saving when either a valid GitHub URL or a new
// CV is supplied. Whatever is supplied must itself be valid.
func ValidateApplicationEdit(githubURL string, cv *Attachment) error {
	hasGithub := !blank(githubURL)
	hasCV := cv.Present()
	if !hasGithub && !hasCV {
		return newError("githubUrl", "Provide a valid GitHub URL or choose a new CV.")
	}
	if hasGithub {
		if err := ValidateGithubURL(githubURL); err != nil {
			return err
		}
	}
	if hasCV {
		return ValidateCV(cv.FileName, cv.ContentType)
	}
	return nil
}
