// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/credit"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// MaxDescriptionLength is the maximum description length in characters.
const MaxDescriptionLength = 255

// RecordTransactionInput represents the input for recording a transaction.
type RecordTransactionInput struct {
	UserID        string
	Amount        decimal.Decimal
	Type          entity.TransactionType
	PaymentMethod entity.PaymentMethod // Optional for expenses, defaults to debit
	Category      entity.Category
	Description   string
	Date          *time.Time // Optional, defaults to now
}

// RecordTransactionOutput represents the output of recording a transaction.
type RecordTransactionOutput struct {
	Transaction *entity.Transaction
	Balance     finance.Balance
	Credit      finance.CreditStatus
}

// RecordTransactionUseCase handles appending a transaction to the ledger.
type RecordTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	profileRepo     adapter.ProfileRepository
	guard           *credit.CycleGuard
	clock           adapter.Clock
}

// NewRecordTransactionUseCase creates a new RecordTransactionUseCase instance.
func NewRecordTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	profileRepo adapter.ProfileRepository,
	guard *credit.CycleGuard,
	clock adapter.Clock,
) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{
		transactionRepo: transactionRepo,
		profileRepo:     profileRepo,
		guard:           guard,
		clock:           clock,
	}
}

// Execute validates and records the transaction. Running totals and, for credit
// expenses, credit used are updated in the same database transaction.
func (uc *RecordTransactionUseCase) Execute(ctx context.Context, input RecordTransactionInput) (*RecordTransactionOutput, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionProfileNotFound,
				"profile not found",
				domainerror.ErrProfileNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	now := uc.clock.Now()
	if _, err := uc.guard.Apply(ctx, profile, now); err != nil {
		return nil, err
	}

	date := now
	if input.Date != nil {
		date = *input.Date
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Amount,
		input.Type,
		input.PaymentMethod,
		input.Category,
		input.Description,
		date,
	)

	if transaction.IsCreditExpense() {
		if err := finance.CheckCreditAvailable(profile.CreditLimit, profile.CreditUsed, transaction.Amount); err != nil {
			return nil, insufficientCreditError(profile, transaction.Amount)
		}
		transaction.BillingCycle = profile.BillingCycle()
	}

	if err := uc.transactionRepo.Record(ctx, transaction); err != nil {
		switch {
		case errors.Is(err, domainerror.ErrInsufficientCredit):
			return nil, insufficientCreditError(profile, transaction.Amount)
		case errors.Is(err, domainerror.ErrProfileNotFound):
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionProfileNotFound,
				"profile not found",
				domainerror.ErrProfileNotFound,
			)
		}
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	slog.Info("transaction recorded",
		"user_id", transaction.UserID,
		"type", transaction.Type,
		"payment_method", transaction.PaymentMethod,
		"amount", transaction.Amount.StringFixed(2),
	)

	updated, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", err)
	}

	return &RecordTransactionOutput{
		Transaction: transaction,
		Balance:     finance.ProfileBalance(updated),
		Credit:      finance.CreditStatusFor(updated, now),
	}, nil
}

func insufficientCreditError(profile *entity.Profile, amount decimal.Decimal) error {
	return domainerror.NewCreditError(
		domainerror.ErrCodeInsufficientCredit,
		fmt.Sprintf("amount %s exceeds available credit %s",
			amount.StringFixed(2), profile.AvailableCredit().StringFixed(2)),
		domainerror.ErrInsufficientCredit,
	)
}

// validateInput checks the input and fills in defaults.
func validateInput(input *RecordTransactionInput) error {
	if !input.Type.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !input.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	input.Amount = input.Amount.Round(2)
	if !input.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be at least 0.01",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	switch {
	case input.Type == entity.TransactionTypeIncome:
		input.PaymentMethod = entity.PaymentMethodDebit
	case input.PaymentMethod == "":
		input.PaymentMethod = entity.PaymentMethodDebit
	case !input.PaymentMethod.IsValid():
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidPaymentMethod,
			"payment method must be 'debit' or 'credit'",
			domainerror.ErrInvalidPaymentMethod,
		)
	}

	if input.Category == "" {
		input.Category = entity.CategoryOther
	}
	if !input.Category.IsValidFor(input.Type) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidCategory,
			fmt.Sprintf("category '%s' is not valid for %s", input.Category, input.Type),
			domainerror.ErrInvalidCategory,
		)
	}

	input.Description = strings.TrimSpace(input.Description)
	if utf8.RuneCountInString(input.Description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if input.Date != nil && input.Date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"invalid transaction date",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	return nil
}
