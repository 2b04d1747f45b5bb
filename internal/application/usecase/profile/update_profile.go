package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/credit"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

// UpdateProfileInput represents a partial profile update. Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID        string
	FullName      *string
	Email         *string
	Phone         *string
	CreditLimit   *decimal.Decimal
	CreditDueDay  *int
	SalaryAmount  *decimal.Decimal
	SalaryDay     *int
	AdvanceAmount *decimal.Decimal
	AdvanceDay    *int
}

// UpdateProfileOutput represents the updated profile.
type UpdateProfileOutput struct {
	Profile *entity.Profile
}

// UpdateProfileUseCase handles editing a profile. Counters are never edited here.
type UpdateProfileUseCase struct {
	profileRepo adapter.ProfileRepository
	guard       *credit.CycleGuard
	clock       adapter.Clock
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(
	profileRepo adapter.ProfileRepository,
	guard *credit.CycleGuard,
	clock adapter.Clock,
) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		profileRepo: profileRepo,
		guard:       guard,
		clock:       clock,
	}
}

// Execute performs the update.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	profile, err := findProfile(ctx, uc.profileRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	// Usage from an elapsed cycle must not block a lower limit.
	if _, err := uc.guard.Apply(ctx, profile, uc.clock.Now()); err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeMissingFullName,
				"full name is required",
				domainerror.ErrMissingFullName,
			)
		}
		profile.FullName = name
	}

	if input.Email != nil {
		if err := ValidateEmail(input.Email); err != nil {
			return nil, err
		}
		profile.Email = emptyToNil(input.Email)
	}
	if input.Phone != nil {
		profile.Phone = emptyToNil(input.Phone)
	}

	if input.CreditLimit != nil {
		profile.CreditLimit = input.CreditLimit.Round(2)
	}
	if input.CreditDueDay != nil {
		profile.CreditDueDay = *input.CreditDueDay
	}
	if err := ValidateCreditLine(profile.CreditLimit, profile.CreditDueDay); err != nil {
		return nil, err
	}
	if profile.CreditLimit.LessThan(profile.CreditUsed) {
		return nil, domainerror.NewCreditError(
			domainerror.ErrCodeCreditLimitBelowUsage,
			fmt.Sprintf("credit limit cannot be lower than the %s already used", profile.CreditUsed.StringFixed(2)),
			domainerror.ErrCreditLimitBelowUsage,
		)
	}

	if input.SalaryAmount != nil {
		profile.SalaryAmount = input.SalaryAmount
	}
	if input.SalaryDay != nil {
		profile.SalaryDay = input.SalaryDay
	}
	if input.AdvanceAmount != nil {
		profile.AdvanceAmount = input.AdvanceAmount
	}
	if input.AdvanceDay != nil {
		profile.AdvanceDay = input.AdvanceDay
	}
	if err := ValidateIncome(IncomeFields{
		SalaryAmount:  profile.SalaryAmount,
		SalaryDay:     profile.SalaryDay,
		AdvanceAmount: profile.AdvanceAmount,
		AdvanceDay:    profile.AdvanceDay,
	}); err != nil {
		return nil, err
	}

	profile.UpdatedAt = time.Now().UTC()
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &UpdateProfileOutput{
		Profile: profile,
	}, nil
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
