// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"fmt"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// IntentRequest is the payload sent to the intent parser.
type IntentRequest struct {
	Message string
	Context entity.FinancialContext
	// ForceFunction, when set, restricts the parser to that function.
	ForceFunction entity.FunctionName
}

// IntentResult is the parser answer: a free-text message and an optional function call.
type IntentResult struct {
	Message      string
	FunctionCall *entity.FunctionCall
}

// ParserStatusError is returned when the parser answers with a non-2xx status.
type ParserStatusError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *ParserStatusError) Error() string {
	return fmt.Sprintf("intent parser returned status %d: %s", e.StatusCode, e.Message)
}

// IntentParser defines the interface of the external natural-language intent parser.
//
//go:generate mockgen -source=intent_parser.go -destination=mock/intent_parser_mock.go -package=mock
type IntentParser interface {
	// Parse converts free-form text into a structured intent.
	Parse(ctx context.Context, request IntentRequest) (*IntentResult, error)

	// IsAvailable checks if the parser is properly configured.
	IsAvailable() bool
}
