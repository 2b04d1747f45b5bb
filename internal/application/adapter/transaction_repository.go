// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID    string
	StartDate *time.Time // Inclusive
	EndDate   *time.Time // Exclusive
	Type      *entity.TransactionType
	Limit     int // Zero means no limit
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category entity.Category
	Total    decimal.Decimal
}

// LedgerSummary aggregates the whole ledger for reporting.
type LedgerSummary struct {
	TransactionCount  int64
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	ExpenseByCategory []CategoryTotal
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Record inserts the transaction and, in the same database transaction, bumps the
	// profile running totals and charges credit for credit expenses. A credit charge
	// that would exceed the limit fails with ErrInsufficientCredit and nothing is written.
	Record(ctx context.Context, transaction *entity.Transaction) error

	// FindByUser retrieves the full transaction history of a user, oldest first.
	FindByUser(ctx context.Context, userID string) ([]*entity.Transaction, error)

	// FindByFilter retrieves transactions matching the filter, newest first.
	FindByFilter(ctx context.Context, filter TransactionFilter) (*entity.TransactionListResult, error)

	// Summarize aggregates every transaction for the admin report.
	Summarize(ctx context.Context) (*LedgerSummary, error)
}
