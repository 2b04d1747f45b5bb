package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/credit"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// GetMonthlySummaryInput represents the input for the month-end projection.
type GetMonthlySummaryInput struct {
	UserID string
}

// GetMonthlySummaryOutput represents the month-end projection.
type GetMonthlySummaryOutput struct {
	Summary finance.MonthlySummary
}

// GetMonthlySummaryUseCase projects the balance at the end of the current month.
type GetMonthlySummaryUseCase struct {
	profileRepo adapter.ProfileRepository
	paymentRepo adapter.ScheduledPaymentRepository
	guard       *credit.CycleGuard
	clock       adapter.Clock
}

// NewGetMonthlySummaryUseCase creates a new GetMonthlySummaryUseCase instance.
func NewGetMonthlySummaryUseCase(
	profileRepo adapter.ProfileRepository,
	paymentRepo adapter.ScheduledPaymentRepository,
	guard *credit.CycleGuard,
	clock adapter.Clock,
) *GetMonthlySummaryUseCase {
	return &GetMonthlySummaryUseCase{
		profileRepo: profileRepo,
		paymentRepo: paymentRepo,
		guard:       guard,
		clock:       clock,
	}
}

// Execute computes current balance + pending income - unsettled payments due this month.
// A missing profile projects from a zero balance with no income schedule.
func (uc *GetMonthlySummaryUseCase) Execute(ctx context.Context, input GetMonthlySummaryInput) (*GetMonthlySummaryOutput, error) {
	today := uc.clock.Now()

	var profile *entity.Profile
	p, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	switch {
	case err == nil:
		if _, err := uc.guard.Apply(ctx, p, today); err != nil {
			return nil, err
		}
		profile = p
	case !errors.Is(err, domainerror.ErrProfileNotFound):
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	payments, err := uc.paymentRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled payments: %w", err)
	}

	summary := finance.ProjectMonth(
		finance.ProfileBalance(profile).Balance,
		finance.IncomeScheduleOf(profile),
		payments,
		today,
	)

	return &GetMonthlySummaryOutput{
		Summary: summary,
	}, nil
}
