package validation

import (
	"errors"
	"strings"
)

// ErrInvalid is matched by every *Error.
var ErrInvalid = errors.New("validation failed")

// Error is a client-side validation failure rendered inline next to Field.
type Error struct {
	Field   string
	Message string
	Fields  []string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

func newError(field, message string) *Error {
	return &Error{Field: field, Message: message, Fields: []string{field}}
}

// Message extracts the inline message of a validation error.
func Message(err error) (string, bool) {
	var ve *Error
	if errors.As(err, &ve) && ve != nil {
		return ve.Message, true
	}
	return "", false
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
