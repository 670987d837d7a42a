package datum

import (
	"errors"
	"fmt"
)

// Error is a registry failure.
//
// Code identifies the failure kind so callers can branch without matching
// strings. The remaining fields carry the context relevant to that kind.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Type is the fact type involved.
	Type Type

	// Provider is the provider that caused the error: the rejected provider
	// for duplicates, the owning provider for null data.
	Provider string

	// Existing is the provider already bound to Type (duplicates only).
	Existing string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes registry errors.
type ErrorCode string

const (
	// ErrCodeMissingInput indicates no provider is bound to the requested type.
	ErrCodeMissingInput ErrorCode = "MISSING_INPUT"

	// ErrCodeDuplicateProvider indicates two providers bound the same type.
	ErrCodeDuplicateProvider ErrorCode = "DUPLICATE_PROVIDER"

	// ErrCodeNullDatum indicates a binding produced nil without an error.
	ErrCodeNullDatum ErrorCode = "NULL_DATUM"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsMissingInput returns true if err is a missing-input error.
// Uses errors.As to handle wrapped errors.
func IsMissingInput(err error) bool {
	return hasCode(err, ErrCodeMissingInput)
}

// IsDuplicateProvider returns true if err is a duplicate-provider error.
func IsDuplicateProvider(err error) bool {
	return hasCode(err, ErrCodeDuplicateProvider)
}

// IsNullDatum returns true if err is a null-datum error.
func IsNullDatum(err error) bool {
	return hasCode(err, ErrCodeNullDatum)
}

func hasCode(err error, code ErrorCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// NewMissingInputError creates an Error for a request with no binding.
func NewMissingInputError(t Type) *Error {
	return &Error{
		Code:    ErrCodeMissingInput,
		Type:    t,
		Message: fmt.Sprintf("no provider is registered for %s", t),
	}
}

// NewDuplicateProviderError creates an Error for a conflicting binding.
func NewDuplicateProviderError(t Type, existing, rejected string) *Error {
	return &Error{
		Code:     ErrCodeDuplicateProvider,
		Type:     t,
		Provider: rejected,
		Existing: existing,
		Message: fmt.Sprintf("%s is already provided by %q; cannot register %q",
			t, existing, rejected),
	}
}

// NewNullDatumError creates an Error for a binding that returned nil.
func NewNullDatumError(t Type, provider string) *Error {
	return &Error{
		Code:     ErrCodeNullDatum,
		Type:     t,
		Provider: provider,
		Message:  fmt.Sprintf("provider %q returned no value for %s", provider, t),
	}
}
