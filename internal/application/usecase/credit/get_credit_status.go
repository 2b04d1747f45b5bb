package credit

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// GetCreditStatusInput represents the input for reading the credit status.
type GetCreditStatusInput struct {
	UserID string
}

// GetCreditStatusOutput represents the output of reading the credit status.
type GetCreditStatusOutput struct {
	Status finance.CreditStatus
}

// GetCreditStatusUseCase handles reading a user's credit line.
type GetCreditStatusUseCase struct {
	profileRepo adapter.ProfileRepository
	guard       *CycleGuard
	clock       adapter.Clock
}

// NewGetCreditStatusUseCase creates a new GetCreditStatusUseCase instance.
func NewGetCreditStatusUseCase(
	profileRepo adapter.ProfileRepository,
	guard *CycleGuard,
	clock adapter.Clock,
) *GetCreditStatusUseCase {
	return &GetCreditStatusUseCase{
		profileRepo: profileRepo,
		guard:       guard,
		clock:       clock,
	}
}

// Execute returns limit, usage and due date information after applying the lazy reset.
func (uc *GetCreditStatusUseCase) Execute(ctx context.Context, input GetCreditStatusInput) (*GetCreditStatusOutput, error) {
	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeProfileNotFound,
				"profile not found",
				domainerror.ErrProfileNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	today := uc.clock.Now()
	if _, err := uc.guard.Apply(ctx, profile, today); err != nil {
		return nil, err
	}

	return &GetCreditStatusOutput{
		Status: finance.CreditStatusFor(profile, today),
	}, nil
}
