// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// DefaultListLimit is applied when no limit is requested.
const DefaultListLimit = 50

// MaxListLimit caps a single page.
const MaxListLimit = 500

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID    string
	StartDate *time.Time // Inclusive
	EndDate   *time.Time // Exclusive
	Type      *entity.TransactionType
	Limit     int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Total        int64
}

// ListTransactionsUseCase handles listing a user's transactions, newest first.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if input.StartDate != nil && input.EndDate != nil && !input.EndDate.After(*input.StartDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"end date must be after start date",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Type:      input.Type,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{
		Transactions: result.Transactions,
		Total:        result.Total,
	}, nil
}

// GetDayTransactionsInput represents the input for one day's transactions.
type GetDayTransactionsInput struct {
	UserID string
	Date   time.Time // Any instant in the requested day, in the user's location
}

// GetDayTransactionsOutput represents the transactions of a single day.
type GetDayTransactionsOutput struct {
	Date         time.Time
	Transactions []*entity.Transaction
	Totals       finance.Totals
}

// GetDayTransactionsUseCase lists every transaction on a calendar day.
type GetDayTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetDayTransactionsUseCase creates a new GetDayTransactionsUseCase instance.
func NewGetDayTransactionsUseCase(transactionRepo adapter.TransactionRepository) *GetDayTransactionsUseCase {
	return &GetDayTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the lookup. The day boundaries follow the location of input.Date.
func (uc *GetDayTransactionsUseCase) Execute(ctx context.Context, input GetDayTransactionsInput) (*GetDayTransactionsOutput, error) {
	loc := input.Date.Location()
	start := time.Date(input.Date.Year(), input.Date.Month(), input.Date.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	result, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list day transactions: %w", err)
	}

	return &GetDayTransactionsOutput{
		Date:         finance.CivilDate(start),
		Transactions: result.Transactions,
		Totals:       finance.SumTransactions(result.Transactions),
	}, nil
}
