// Package viewmodel derives display strings from entity fields. Every function
// is total and pure.
package viewmodel

import (
	"strconv"
	"strings"
	"time"

	"hire-portal/internal/domain/application"
	"hire-portal/internal/domain/role"
)

const (
	SalaryNotSpecified = "Salary not specified"
	CurrencySuffix     = "TND"
	UnknownStatus      = "UNKNOWN"
	Missing            = "—"
)

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func SalaryText(min, max *float64) string {
	switch {
	case min == nil && max == nil:
		return SalaryNotSpecified
	case max == nil:
		return "From " + formatAmount(*min) + " " + CurrencySuffix
	case min == nil:
		return "Up to " + formatAmount(*max) + " " + CurrencySuffix
	default:
		return formatAmount(*min) + "–" + formatAmount(*max) + " " + CurrencySuffix
	}
}

func BadgeText(status string) string {
	if strings.TrimSpace(status) == "" {
		return UnknownStatus
	}
	return status
}

// StatusClass is the css class for a status chip.
func StatusClass(status string) string {
	return strings.ToLower(status)
}

type Pill struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// StatusPill renders the enabled flag. Only an explicit false is disabled.
func StatusPill(enabled *bool) Pill {
	if enabled != nil && !*enabled {
		return Pill{Text: "Disabled", Class: "pill-danger"}
	}
	return Pill{Text: "Enabled", Class: "pill-success"}
}

// FormatTimestamp renders epoch milliseconds as RFC3339 UTC.
func FormatTimestamp(ms int64) string {
	if ms <= 0 {
		return Missing
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func PrimaryRoleLabel(roles []string) string {
	r := role.Primary(roles)
	if r == "" {
		return Missing
	}
	return string(r)
}

type Step struct {
	Status string `json:"status"`
	Done   bool   `json:"done"`
	Active bool   `json:"active"`
}

func StepActive(current, step string) bool {
	return current != "" && current == step
}

// StepDone reports whether step precedes the current status in the lifecycle.
// HIRED and REJECTED count from their own position, so a rejected application
// shows every earlier step as done.
func StepDone(current, step string) bool {
	if current == "" {
		return false
	}
	stepIdx := application.Status(step).Index()
	if stepIdx < 0 {
		return false
	}
	curIdx := application.Status(current).Index()
	if curIdx < 0 {
		return false
	}
	return stepIdx < curIdx
}

func Timeline(current string) []Step {
	out := make([]Step, 0, len(application.Lifecycle))
	for _, s := range application.Lifecycle {
		out = append(out, Step{
			Status: string(s),
			Done:   StepDone(current, string(s)),
			Active: StepActive(current, string(s)),
		})
	}
	return out
}
