// Package error defines domain-specific errors for the finance assistant.
package error

import "errors"

// Profile domain errors.
var (
	// ErrProfileNotFound is returned when no profile exists for a user ID.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrMissingFullName is returned when registration omits the full name.
	ErrMissingFullName = errors.New("full name is required")

	// ErrInvalidEmail is returned when the provided email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidAmount is returned when a profile amount is negative or malformed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrUserIDGeneration is returned when no free user ID could be generated.
	ErrUserIDGeneration = errors.New("could not generate a unique user id")
)

// ProfileErrorCode defines error codes for profile errors.
// Format: PRF-XXYYYY where XX is category and YYYY is specific error.
type ProfileErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingFullName      ProfileErrorCode = "PRF-010001"
	ErrCodeInvalidEmail         ProfileErrorCode = "PRF-010002"
	ErrCodeInvalidProfileAmount ProfileErrorCode = "PRF-010003"
	ErrCodeInvalidProfileDay    ProfileErrorCode = "PRF-010004"
	ErrCodeMissingProfileFields ProfileErrorCode = "PRF-010005"

	// Lookup errors (02XXXX)
	ErrCodeProfileNotFound ProfileErrorCode = "PRF-020001"

	// Generation errors (03XXXX)
	ErrCodeUserIDGeneration ProfileErrorCode = "PRF-030001"
)

// ProfileError represents a profile error with code and message.
type ProfileError struct {
	Code    ProfileErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProfileError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProfileError) Unwrap() error {
	return e.Err
}

// NewProfileError creates a new ProfileError with the given code and message.
func NewProfileError(code ProfileErrorCode, message string, err error) *ProfileError {
	return &ProfileError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
