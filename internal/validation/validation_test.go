package validation

import (
	"errors"
	"strings"
	"testing"

	"hire-portal/internal/domain/job"
)

func f64(v float64) *float64 { return &v }

func intp(v int) *int { return &v }

func validOffer() job.JobOffer {
	return job.JobOffer{
		Title:          " Backend Engineer ",
		Description:    "Build APIs",
		Location:       "Tunis",
		MinSalary:      f64(1500),
		MaxSalary:      f64(3000),
		EmploymentType: "FULL_TIME",
		JobStatus:      "published",
		Requirements: []job.Requirement{
			{Category: "skill", Description: "Go", MinYears: intp(1), MaxYears: intp(3)},
		},
	}
}

func TestValidateJobOffer_Valid(t *testing.T) {
	if err := ValidateJobOffer(validOffer()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestValidateJobOffer_MissingTitle(t *testing.T) {
	o := validOffer()
	o.Title = "   "
	err := ValidateJobOffer(o)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var ve *Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *Error")
	}
	found := false
	for _, f := range ve.Fields {
		if strings.Contains(f, "title") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected title among fields, got %v", ve.Fields)
	}
}

func TestValidateJobOffer_NegativeSalary(t *testing.T) {
	o := validOffer()
	o.MinSalary = f64(-1)
	if err := ValidateJobOffer(o); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateJobOffer_Ranges(t *testing.T) {
	o := validOffer()
	o.MinSalary = f64(5000)
	o.MaxSalary = f64(1000)
	msg, ok := Message(ValidateJobOffer(o))
	if !ok || msg != "Min salary cannot be greater than max salary." {
		t.Fatalf("unexpected message %q", msg)
	}

	o = validOffer()
	o.Requirements = append(o.Requirements, job.Requirement{
		Category: job.CategoryExperience, Description: "Backend", MinYears: intp(5), MaxYears: intp(2),
	})
	msg, ok = Message(ValidateJobOffer(o))
	if !ok || msg != "Requirement #2: min years cannot be greater than max years." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestValidateJobOffer_BadCategory(t *testing.T) {
	o := validOffer()
	o.Requirements[0].Category = "HOBBY"
	if err := ValidateJobOffer(o); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateCV(t *testing.T) {
	cases := []struct {
		name, file, ctype string
		ok                bool
	}{
		{"mime", "resume.bin", "application/pdf", true},
		{"suffix", "Resume.PDF", "application/octet-stream", true},
		{"docx", "resume.docx", "application/msword", false},
		{"missing", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCV(tc.file, tc.ctype)
			if (err == nil) != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, err)
			}
		})
	}
}

func TestValidateGithubURL(t *testing.T) {
	for _, v := range []string{"https://github.com/me", "HTTP://github.com/me"} {
		if err := ValidateGithubURL(v); err != nil {
			t.Fatalf("%q: unexpected err %v", v, err)
		}
	}
	for _, v := range []string{"", "github.com/me", "https://", "ftp://x"} {
		if err := ValidateGithubURL(v); err == nil {
			t.Fatalf("%q: expected error", v)
		}
	}
}

func TestValidateApplicationEdit(t *testing.T) {
	if err := ValidateApplicationEdit("", nil); err == nil {
		t.Fatalf("expected error when nothing is supplied")
	}
	if err := ValidateApplicationEdit("", &Attachment{FileName: "cv.pdf", Size: 10}); err != nil {
		t.Fatalf("cv alone must be enough: %v", err)
	}
	if err := ValidateApplicationEdit("https://github.com/me", nil); err != nil {
		t.Fatalf("github alone must be enough: %v", err)
	}
	if err := ValidateApplicationEdit("nope", &Attachment{FileName: "cv.pdf", Size: 10}); err == nil {
		t.Fatalf("invalid github must fail even with a cv")
	}
}

func TestValidateApplication(t *testing.T) {
	cv := &Attachment{FileName: "cv.pdf", ContentType: "application/pdf", Size: 42}
	if err := ValidateApplication("job-1", "https://github.com/me", cv); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := ValidateApplication("job-1", "https://github.com/me", nil); err == nil {
		t.Fatalf("expected missing cv error")
	}
	if err := ValidateApplication("", "https://github.com/me", cv); err == nil {
		t.Fatalf("expected missing job error")
	}
}

func TestPhone(t *testing.T) {
	if got := NationalPhone("+216 98 765 432"); got != "98765432" {
		t.Fatalf("unexpected national %q", got)
	}
	if got := NationalPhone("+216123456789"); got != "12345678" {
		t.Fatalf("expected truncation to 8 digits, got %q", got)
	}
	if got := InternationalPhone("98-765-432"); got != "+21698765432" {
		t.Fatalf("unexpected international %q", got)
	}
	if got := InternationalPhone("1234"); got != "" {
		t.Fatalf("expected empty for short number, got %q", got)
	}
	if ValidateNationalPhone("") != nil || ValidateNationalPhone("12345678") != nil {
		t.Fatalf("expected valid phones")
	}
	if ValidateNationalPhone("1234567a") == nil {
		t.Fatalf("expected invalid phone")
	}
}
