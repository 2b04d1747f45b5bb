// Package error defines domain-specific errors for the finance assistant.
package error

import "errors"

// Assistant domain errors.
var (
	// ErrSessionNotFound is returned when an assistant session does not exist or expired.
	ErrSessionNotFound = errors.New("assistant session not found")

	// ErrSessionBusy is returned when a message arrives while another one is still being processed.
	ErrSessionBusy = errors.New("assistant session is processing another message")

	// ErrNoPendingTransaction is returned when confirm or cancel is called without a pending intent.
	ErrNoPendingTransaction = errors.New("no pending transaction to confirm")

	// ErrEmptyMessage is returned when the user message is blank.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrUnauthorizedSessionAccess is returned when a session belongs to another user.
	ErrUnauthorizedSessionAccess = errors.New("unauthorized access to assistant session")

	// ErrParserUnavailable is returned when no intent parser is configured.
	ErrParserUnavailable = errors.New("intent parser is not configured")

	// ErrInvalidAmountText is returned when no positive amount can be read from text.
	ErrInvalidAmountText = errors.New("no valid amount in text")

	// ErrMissingScheduleDay is returned when a schedule command has no "dia N".
	ErrMissingScheduleDay = errors.New("schedule command has no due day")
)

// AssistantErrorCode defines error codes for assistant errors.
// Format: AST-XXYYYY where XX is category and YYYY is specific error.
type AssistantErrorCode string

const (
	// Session errors (01XXXX)
	ErrCodeSessionNotFound           AssistantErrorCode = "AST-010001"
	ErrCodeSessionBusy               AssistantErrorCode = "AST-010002"
	ErrCodeUnauthorizedSessionAccess AssistantErrorCode = "AST-010003"

	// Message errors (02XXXX)
	ErrCodeEmptyMessage         AssistantErrorCode = "AST-020001"
	ErrCodeNoPendingTransaction AssistantErrorCode = "AST-020002"
	ErrCodeInvalidAmountText    AssistantErrorCode = "AST-020003"
	ErrCodeMissingScheduleDay   AssistantErrorCode = "AST-020004"
)

// AssistantError represents an assistant error with code and message.
type AssistantError struct {
	Code    AssistantErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AssistantError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AssistantError) Unwrap() error {
	return e.Err
}

// NewAssistantError creates a new AssistantError with the given code and message.
func NewAssistantError(code AssistantErrorCode, message string, err error) *AssistantError {
	return &AssistantError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
