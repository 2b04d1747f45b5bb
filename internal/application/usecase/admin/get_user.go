package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// GetUserInput represents the input for reading a user.
type GetUserInput struct {
	UserID string
}

// GetUserOutput represents a user with balance, credit and scheduled payments.
type GetUserOutput struct {
	User              entity.ProfileSummary
	Credit            finance.CreditStatus
	ScheduledPayments []finance.PaymentProjection
}

// GetUserUseCase handles reading one user for the admin console.
type GetUserUseCase struct {
	profileRepo adapter.ProfileRepository
	paymentRepo adapter.ScheduledPaymentRepository
	clock       adapter.Clock
}

// NewGetUserUseCase creates a new GetUserUseCase instance.
func NewGetUserUseCase(
	profileRepo adapter.ProfileRepository,
	paymentRepo adapter.ScheduledPaymentRepository,
	clock adapter.Clock,
) *GetUserUseCase {
	return &GetUserUseCase{
		profileRepo: profileRepo,
		paymentRepo: paymentRepo,
		clock:       clock,
	}
}

// Execute performs the lookup.
func (uc *GetUserUseCase) Execute(ctx context.Context, input GetUserInput) (*GetUserOutput, error) {
	p, err := findUser(ctx, uc.profileRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled payments: %w", err)
	}

	today := uc.clock.Now()
	projections := make([]finance.PaymentProjection, 0, len(payments))
	for _, payment := range payments {
		projections = append(projections, finance.ProjectPayment(payment, today))
	}

	return &GetUserOutput{
		User:              summarize(p),
		Credit:            finance.CreditStatusFor(p, today),
		ScheduledPayments: projections,
	}, nil
}

func findUser(ctx context.Context, repo adapter.ProfileRepository, userID string) (*entity.Profile, error) {
	p, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil, domainerror.NewAdminError(
				domainerror.ErrCodeAdminUserNotFound,
				"user not found",
				domainerror.ErrProfileNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return p, nil
}
