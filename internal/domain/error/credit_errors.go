// Package error defines domain-specific errors for the finance assistant.
package error

import "errors"

// Credit domain errors.
var (
	// ErrInsufficientCredit is returned when a credit expense exceeds the available limit.
	ErrInsufficientCredit = errors.New("insufficient credit")

	// ErrInvalidCreditLimit is returned when a credit limit is negative.
	ErrInvalidCreditLimit = errors.New("invalid credit limit")

	// ErrCreditLimitBelowUsage is returned when a new limit would be lower than the credit already used.
	ErrCreditLimitBelowUsage = errors.New("credit limit below current usage")

	// ErrInvalidDueDay is returned when a day of month is outside 1-31.
	ErrInvalidDueDay = errors.New("day of month must be between 1 and 31")
)

// CreditErrorCode defines error codes for credit errors.
// Format: CRD-XXYYYY where XX is category and YYYY is specific error.
type CreditErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInsufficientCredit    CreditErrorCode = "CRD-010001"
	ErrCodeInvalidCreditLimit    CreditErrorCode = "CRD-010002"
	ErrCodeCreditLimitBelowUsage CreditErrorCode = "CRD-010003"
	ErrCodeInvalidDueDay         CreditErrorCode = "CRD-010004"
)

// CreditError represents a credit error with code and message.
type CreditError struct {
	Code    CreditErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CreditError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CreditError) Unwrap() error {
	return e.Err
}

// NewCreditError creates a new CreditError with the given code and message.
func NewCreditError(code CreditErrorCode, message string, err error) *CreditError {
	return &CreditError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
