// Package balance contains balance use cases.
package balance

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/credit"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// GetBalanceInput represents the input for reading a balance.
type GetBalanceInput struct {
	UserID string
}

// GetBalanceOutput represents a user's balance together with their credit line.
type GetBalanceOutput struct {
	Balance         finance.Balance
	CreditLimit     decimal.Decimal
	AvailableCredit decimal.Decimal
}

// GetBalanceUseCase reads the balance from the running totals.
type GetBalanceUseCase struct {
	profileRepo adapter.ProfileRepository
	guard       *credit.CycleGuard
	clock       adapter.Clock
}

// NewGetBalanceUseCase creates a new GetBalanceUseCase instance.
func NewGetBalanceUseCase(
	profileRepo adapter.ProfileRepository,
	guard *credit.CycleGuard,
	clock adapter.Clock,
) *GetBalanceUseCase {
	return &GetBalanceUseCase{
		profileRepo: profileRepo,
		guard:       guard,
		clock:       clock,
	}
}

// Execute returns the balance. A missing profile yields a zero-valued result.
func (uc *GetBalanceUseCase) Execute(ctx context.Context, input GetBalanceInput) (*GetBalanceOutput, error) {
	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return &GetBalanceOutput{
				Balance:         finance.ProfileBalance(nil),
				CreditLimit:     decimal.Zero,
				AvailableCredit: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	if _, err := uc.guard.Apply(ctx, profile, uc.clock.Now()); err != nil {
		return nil, err
	}

	return &GetBalanceOutput{
		Balance:         finance.ProfileBalance(profile),
		CreditLimit:     profile.CreditLimit,
		AvailableCredit: profile.AvailableCredit(),
	}, nil
}
