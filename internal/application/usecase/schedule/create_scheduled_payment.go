// Package schedule contains scheduled payment use cases.
package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// CreateScheduledPaymentInput represents the input for scheduling a payment.
type CreateScheduledPaymentInput struct {
	UserID        string
	Name          string
	Amount        decimal.Decimal
	DueDay        int
	IsRecurring   bool
	SpecificMonth *time.Time // Required when IsRecurring is false
	Category      entity.Category
}

// CreateScheduledPaymentOutput represents the created payment evaluated for this month.
type CreateScheduledPaymentOutput struct {
	Payment    *entity.ScheduledPayment
	Projection finance.PaymentProjection
}

// CreateScheduledPaymentUseCase handles scheduling a payment.
type CreateScheduledPaymentUseCase struct {
	paymentRepo adapter.ScheduledPaymentRepository
	clock       adapter.Clock
}

// NewCreateScheduledPaymentUseCase creates a new CreateScheduledPaymentUseCase instance.
func NewCreateScheduledPaymentUseCase(
	paymentRepo adapter.ScheduledPaymentRepository,
	clock adapter.Clock,
) *CreateScheduledPaymentUseCase {
	return &CreateScheduledPaymentUseCase{
		paymentRepo: paymentRepo,
		clock:       clock,
	}
}

// Execute performs the creation.
func (uc *CreateScheduledPaymentUseCase) Execute(ctx context.Context, input CreateScheduledPaymentInput) (*CreateScheduledPaymentOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeMissingPaymentName,
			"payment name is required",
			domainerror.ErrMissingPaymentName,
		)
	}

	category := input.Category
	if category == "" {
		category = entity.CategoryBills
	}

	var month *time.Time
	if !input.IsRecurring && input.SpecificMonth != nil {
		m := monthStart(*input.SpecificMonth)
		month = &m
	}

	if err := validatePayment(input.Amount, input.DueDay, input.IsRecurring, month, category); err != nil {
		return nil, err
	}

	payment := entity.NewScheduledPayment(
		input.UserID,
		name,
		input.Amount.Round(2),
		input.DueDay,
		input.IsRecurring,
		month,
		category,
	)

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create scheduled payment: %w", err)
	}

	return &CreateScheduledPaymentOutput{
		Payment:    payment,
		Projection: finance.ProjectPayment(payment, uc.clock.Now()),
	}, nil
}

// validatePayment checks the fields shared by creation and update.
func validatePayment(amount decimal.Decimal, dueDay int, recurring bool, month *time.Time, category entity.Category) error {
	if !amount.Round(2).IsPositive() {
		return domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidPaymentAmount,
		)
	}

	if dueDay < 1 || dueDay > 31 {
		return domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidPaymentDueDay,
			"due day must be between 1 and 31",
			domainerror.ErrInvalidDueDay,
		)
	}

	if !recurring && month == nil {
		return domainerror.NewScheduleError(
			domainerror.ErrCodeMissingSpecificMonth,
			"one-time payments require a specific month",
			domainerror.ErrMissingSpecificMonth,
		)
	}

	if !category.IsValidFor(entity.TransactionTypeExpense) {
		return domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidPaymentCategory,
			fmt.Sprintf("category '%s' is not an expense category", category),
			domainerror.ErrInvalidCategory,
		)
	}

	return nil
}

// monthStart normalizes a date to the first day of its month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
