package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"hire-portal/internal/infrastructure/backend"
	"hire-portal/internal/validation"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrForbidden            = errors.New("forbidden")
	ErrNotEditable          = errors.New("not editable")
	ErrNotFound             = errors.New("not found")
	ErrInternal             = errors.New("internal error")
)

// Op names a user action for error messages.
type Op struct {
	// Failed is the generic failure text, e.g. "Failed to load jobs".
	Failed string
	// Conflict is shown for HTTP 409 when the action has a known conflict.
	Conflict string
	// NotFound is shown for HTTP 404.
	NotFound string
}

var (
	OpLoadJobs          = Op{Failed: "Failed to load jobs", NotFound: "Job not found."}
	OpLoadJob           = Op{Failed: "Failed to load job", NotFound: "Job not found."}
	OpCreateJob         = Op{Failed: "Create failed"}
	OpUpdateJob         = Op{Failed: "Update failed", NotFound: "Job not found."}
	OpDeleteJob         = Op{Failed: "Delete failed", NotFound: "Job not found."}
	OpLoadApplications  = Op{Failed: "Failed to load applications", NotFound: "Application not found."}
	OpLoadApplication   = Op{Failed: "Failed to load application", NotFound: "Application not found."}
	OpApply             = Op{Failed: "Failed to submit application", Conflict: "You already applied to this job.", NotFound: "Job not found."}
	OpUpdateApplication = Op{Failed: "Update failed", Conflict: "Updates are allowed only while status is APPLIED.", NotFound: "Application not found."}
	OpUpdateStatus      = Op{Failed: "Failed to update status", NotFound: "Application not found."}
	OpDownloadCV        = Op{Failed: "Failed to download CV", NotFound: "CV not found."}
	OpLoadUsers         = Op{Failed: "Failed to load users", NotFound: "User not found."}
	OpLoadUser          = Op{Failed: "Failed to load user", NotFound: "User not found."}
	OpUpdateRoles       = Op{Failed: "Failed to update roles", NotFound: "User not found."}
	OpSetEnabled        = Op{Failed: "Failed to update user status", NotFound: "User not found."}
	OpDeleteUser        = Op{Failed: "Failed to delete user", NotFound: "User not found."}
	OpLoadProfile       = Op{Failed: "Failed to load profile"}
	OpUpdateProfile     = Op{Failed: "Update failed", Conflict: "Username already taken."}
)

const MessageUnreachable = "Backend not reachable."

// UserMessage converts any usecase error into the text shown to the user.
func UserMessage(err error, op Op) string {
	if err == nil {
		return ""
	}
	if msg, ok := validation.Message(err); ok {
		return msg
	}

	switch {
	case errors.Is(err, ErrConfirmationRequired):
		return "Please confirm this action."
	case errors.Is(err, ErrNotEditable):
		return "Updates are allowed only while status is APPLIED."
	case errors.Is(err, ErrForbidden):
		return "You are not allowed to perform this action."
	}

	status, ok := backend.StatusOf(err)
	if !ok {
		if errors.Is(err, ErrNotFound) && op.NotFound != "" {
			return op.NotFound
		}
		return op.Failed + "."
	}

	switch status {
	case 0:
		return MessageUnreachable
	case http.StatusConflict:
		if op.Conflict != "" {
			return op.Conflict
		}
	case http.StatusNotFound:
		if op.NotFound != "" {
			return op.NotFound
		}
		return "Not found."
	}
	return fmt.Sprintf("%s (HTTP %d).", op.Failed, status)
}

// RemoteError is a failed backend call together with the action it belonged to.
type RemoteError struct {
	Op  Op
	Err error
}

func (e *RemoteError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Op.Failed + ": " + e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Message is the user-facing text.
func (e *RemoteError) Message() string {
	return UserMessage(e.Err, e.Op)
}

// Status is the HTTP status the portal answers with.
func (e *RemoteError) Status() int {
	status, ok := backend.StatusOf(e.Err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch {
	case status == 0:
		return http.StatusServiceUnavailable
	case status == http.StatusUnprocessableEntity:
		return http.StatusBadRequest
	case status >= 400 && status < 500:
		return status
	default:
		return http.StatusBadGateway
	}
}

func remote(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &RemoteError{Op: op, Err: err}
}
