// Package error defines domain-specific errors for the finance assistant.
package error

import "errors"

// Scheduled payment domain errors.
var (
	// ErrScheduledPaymentNotFound is returned when a scheduled payment does not exist.
	ErrScheduledPaymentNotFound = errors.New("scheduled payment not found")

	// ErrMissingPaymentName is returned when a scheduled payment has no name.
	ErrMissingPaymentName = errors.New("scheduled payment name is required")

	// ErrInvalidPaymentAmount is returned when a scheduled payment amount is not positive.
	ErrInvalidPaymentAmount = errors.New("invalid scheduled payment amount")

	// ErrMissingSpecificMonth is returned when a one-time payment has no month.
	ErrMissingSpecificMonth = errors.New("one-time payments require a specific month")

	// ErrUnauthorizedPaymentAccess is returned when a payment belongs to another user.
	ErrUnauthorizedPaymentAccess = errors.New("unauthorized access to scheduled payment")

	// ErrPaymentAlreadyPaid is returned when a payment is already settled for the current cycle.
	ErrPaymentAlreadyPaid = errors.New("scheduled payment already paid")
)

// ScheduleErrorCode defines error codes for scheduled payment errors.
// Format: SCH-XXYYYY where XX is category and YYYY is specific error.
type ScheduleErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeScheduledPaymentNotFound  ScheduleErrorCode = "SCH-010001"
	ErrCodeMissingPaymentName        ScheduleErrorCode = "SCH-010002"
	ErrCodeInvalidPaymentAmount      ScheduleErrorCode = "SCH-010003"
	ErrCodeInvalidPaymentDueDay      ScheduleErrorCode = "SCH-010004"
	ErrCodeMissingSpecificMonth      ScheduleErrorCode = "SCH-010005"
	ErrCodeInvalidPaymentCategory    ScheduleErrorCode = "SCH-010006"
	ErrCodeUnauthorizedPaymentAccess ScheduleErrorCode = "SCH-010007"
	ErrCodeMissingScheduleFields     ScheduleErrorCode = "SCH-010008"

	// State errors (02XXXX)
	ErrCodeAlreadyPaid ScheduleErrorCode = "SCH-020001"
)

// ScheduleError represents a scheduled payment error with code and message.
type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ScheduleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ScheduleError) Unwrap() error {
	return e.Err
}

// NewScheduleError creates a new ScheduleError with the given code and message.
func NewScheduleError(code ScheduleErrorCode, message string, err error) *ScheduleError {
	return &ScheduleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
