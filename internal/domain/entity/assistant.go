// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IntentClass is the outcome of the local keyword pre-filter.
type IntentClass string

const (
	IntentClassSchedule    IntentClass = "schedule"
	IntentClassTransaction IntentClass = "transaction"
	IntentClassQuery       IntentClass = "query"
	IntentClassUnknown     IntentClass = "unknown"
)

// FunctionName identifies an intent returned by the intent parser.
type FunctionName string

const (
	FunctionRecordTransaction    FunctionName = "record_transaction"
	FunctionGetFinancialSummary  FunctionName = "get_financial_summary"
	FunctionGetCurrentBalance    FunctionName = "get_current_balance"
	FunctionGetDayTransactions   FunctionName = "get_day_transactions"
	FunctionGetScheduledPayments FunctionName = "get_scheduled_payments"
)

// IsKnown reports whether the function is part of the parser contract.
func (f FunctionName) IsKnown() bool {
	switch f {
	case FunctionRecordTransaction,
		FunctionGetFinancialSummary,
		FunctionGetCurrentBalance,
		FunctionGetDayTransactions,
		FunctionGetScheduledPayments:
		return true
	}
	return false
}

// FunctionCall is a structured intent with its raw arguments.
type FunctionCall struct {
	Name FunctionName
	Args map[string]any
}

// PendingTransaction is a parsed record_transaction intent awaiting user confirmation.
type PendingTransaction struct {
	ID            uuid.UUID
	Amount        decimal.Decimal
	Type          TransactionType
	PaymentMethod PaymentMethod
	Category      Category
	Description   string
	CreatedAt     time.Time
}

// Session is the assistant conversation state owned by one client.
type Session struct {
	ID        uuid.UUID
	UserID    string
	Pending   *PendingTransaction
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession creates an empty assistant session for the user.
func NewSession(userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FinancialContext is the snapshot of a user's finances handed to the intent parser.
type FinancialContext struct {
	Today              time.Time
	Balance            decimal.Decimal
	DebitBalance       decimal.Decimal
	CreditLimit        decimal.Decimal
	CreditUsed         decimal.Decimal
	AvailableCredit    decimal.Decimal
	CreditDueDay       int
	SalaryAmount       *decimal.Decimal
	SalaryDay          *int
	AdvanceAmount      *decimal.Decimal
	AdvanceDay         *int
	RecentTransactions []*Transaction
	ScheduledPayments  []*ScheduledPayment
}
