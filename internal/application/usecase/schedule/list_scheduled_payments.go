package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// ListScheduledPaymentsInput represents the input for listing scheduled payments.
type ListScheduledPaymentsInput struct {
	UserID string // Empty lists every user's payments (admin console)
}

// ListScheduledPaymentsOutput represents the payments evaluated for the current month.
type ListScheduledPaymentsOutput struct {
	Payments []finance.PaymentProjection
}

// ListScheduledPaymentsUseCase handles listing scheduled payments.
type ListScheduledPaymentsUseCase struct {
	paymentRepo adapter.ScheduledPaymentRepository
	clock       adapter.Clock
}

// NewListScheduledPaymentsUseCase creates a new ListScheduledPaymentsUseCase instance.
func NewListScheduledPaymentsUseCase(
	paymentRepo adapter.ScheduledPaymentRepository,
	clock adapter.Clock,
) *ListScheduledPaymentsUseCase {
	return &ListScheduledPaymentsUseCase{
		paymentRepo: paymentRepo,
		clock:       clock,
	}
}

// Execute performs the listing.
func (uc *ListScheduledPaymentsUseCase) Execute(ctx context.Context, input ListScheduledPaymentsInput) (*ListScheduledPaymentsOutput, error) {
	var (
		payments []*entity.ScheduledPayment
		err      error
	)
	if input.UserID == "" {
		payments, err = uc.paymentRepo.FindAll(ctx)
	} else {
		payments, err = uc.paymentRepo.FindByUserID(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled payments: %w", err)
	}

	today := uc.clock.Now()
	projections := make([]finance.PaymentProjection, 0, len(payments))
	for _, p := range payments {
		projections = append(projections, finance.ProjectPayment(p, today))
	}

	return &ListScheduledPaymentsOutput{
		Payments: projections,
	}, nil
}

// findPayment loads a payment and, unless userID is empty, checks ownership.
func findPayment(ctx context.Context, repo adapter.ScheduledPaymentRepository, userID string, id uint) (*entity.ScheduledPayment, error) {
	payment, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrScheduledPaymentNotFound) {
			return nil, domainerror.NewScheduleError(
				domainerror.ErrCodeScheduledPaymentNotFound,
				"scheduled payment not found",
				domainerror.ErrScheduledPaymentNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find scheduled payment: %w", err)
	}

	if userID != "" && payment.UserID != userID {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeUnauthorizedPaymentAccess,
			"scheduled payment does not belong to user",
			domainerror.ErrUnauthorizedPaymentAccess,
		)
	}

	return payment, nil
}
