// Package error defines domain-specific errors for the finance assistant.
package error

import "errors"

// Admin domain errors.
var (
	// ErrInvalidPagination is returned when page or limit are out of range.
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)

// AdminErrorCode defines error codes for admin console errors.
// Format: ADM-XXYYYY where XX is category and YYYY is specific error.
type AdminErrorCode string

const (
	// Lookup errors (01XXXX)
	ErrCodeAdminUserNotFound    AdminErrorCode = "ADM-010001"
	ErrCodeAdminPaymentNotFound AdminErrorCode = "ADM-010002"

	// Validation errors (02XXXX)
	ErrCodeInvalidPagination AdminErrorCode = "ADM-020001"
)

// AdminError represents an admin console error with code and message.
type AdminError struct {
	Code    AdminErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AdminError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AdminError) Unwrap() error {
	return e.Err
}

// NewAdminError creates a new AdminError with the given code and message.
func NewAdminError(code AdminErrorCode, message string, err error) *AdminError {
	return &AdminError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
