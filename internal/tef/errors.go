package tef

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCodeInvalidInput is the code carried by every InvalidInputError.
const ErrCodeInvalidInput = "INVALID_INPUT"

// InvalidInputError reports a structurally malformed trace record.
//
// Missing lists every absent required field in declaration order. Field and
// Message describe a field that is present but has an unusable value.
type InvalidInputError struct {
	// Kind names the record shape being parsed, e.g. "complete event".
	Kind string

	// Missing holds the names of all absent required fields.
	Missing []string

	// Field is the offending field for value errors.
	Field string

	// Message describes a value error.
	Message string
}

func (e *InvalidInputError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: %s is missing required field(s): %s",
			ErrCodeInvalidInput, e.Kind, strings.Join(e.Missing, ", "))
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s field %q: %s", ErrCodeInvalidInput, e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrCodeInvalidInput, e.Kind, e.Message)
}

// IsInvalidInput returns true if err is or wraps an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}

func missingFields(kind string, missing []string) error {
	return &InvalidInputError{Kind: kind, Missing: missing}
}

func invalidField(kind, field, format string, args ...any) error {
	return &InvalidInputError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}
