// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/profile"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// maxUserIDAttempts bounds the retries on user ID collisions.
const maxUserIDAttempts = 10

// RegisterProfileInput represents the input for registration.
type RegisterProfileInput struct {
	FullName       string
	Email          *string
	Phone          *string
	InitialBalance decimal.Decimal
	CreditLimit    decimal.Decimal
	CreditDueDay   int
	SalaryAmount   *decimal.Decimal
	SalaryDay      *int
	AdvanceAmount  *decimal.Decimal
	AdvanceDay     *int
}

// RegisterProfileOutput represents the output of registration.
type RegisterProfileOutput struct {
	AccessToken *adapter.AccessToken
	Profile     *entity.Profile
}

// RegisterProfileUseCase handles registration of a new profile.
type RegisterProfileUseCase struct {
	profileRepo  adapter.ProfileRepository
	tokenService adapter.TokenService
	idGenerator  adapter.UserIDGenerator
	clock        adapter.Clock
}

// NewRegisterProfileUseCase creates a new RegisterProfileUseCase instance.
func NewRegisterProfileUseCase(
	profileRepo adapter.ProfileRepository,
	tokenService adapter.TokenService,
	idGenerator adapter.UserIDGenerator,
	clock adapter.Clock,
) *RegisterProfileUseCase {
	return &RegisterProfileUseCase{
		profileRepo:  profileRepo,
		tokenService: tokenService,
		idGenerator:  idGenerator,
		clock:        clock,
	}
}

// Execute performs the registration.
func (uc *RegisterProfileUseCase) Execute(ctx context.Context, input RegisterProfileInput) (*RegisterProfileOutput, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeMissingFullName,
			"full name is required",
			domainerror.ErrMissingFullName,
		)
	}

	if err := profile.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := profile.ValidateCreditLine(input.CreditLimit, input.CreditDueDay); err != nil {
		return nil, err
	}

	if err := profile.ValidateIncome(profile.IncomeFields{
		SalaryAmount:  input.SalaryAmount,
		SalaryDay:     input.SalaryDay,
		AdvanceAmount: input.AdvanceAmount,
		AdvanceDay:    input.AdvanceDay,
	}); err != nil {
		return nil, err
	}

	userID, err := uc.newUserID(ctx)
	if err != nil {
		return nil, err
	}

	p := entity.NewProfile(
		userID,
		fullName,
		input.InitialBalance.Round(2),
		input.CreditLimit.Round(2),
		input.CreditDueDay,
	)
	p.Email = input.Email
	p.Phone = input.Phone
	p.SalaryAmount = input.SalaryAmount
	p.SalaryDay = input.SalaryDay
	p.AdvanceAmount = input.AdvanceAmount
	p.AdvanceDay = input.AdvanceDay

	// The cycle already open at registration starts the credit history.
	marker := finance.CycleMarker(uc.clock.Now(), p.CreditDueDay)
	p.LastCreditResetAt = &marker

	if err := uc.profileRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, p.UserID, adapter.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("profile registered", "user_id", p.UserID)

	return &RegisterProfileOutput{
		AccessToken: token,
		Profile:     p,
	}, nil
}

// newUserID draws random IDs until an unused one is found.
func (uc *RegisterProfileUseCase) newUserID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxUserIDAttempts; attempt++ {
		candidate, err := uc.idGenerator.NewUserID()
		if err != nil {
			return "", fmt.Errorf("failed to generate user id: %w", err)
		}

		exists, err := uc.profileRepo.ExistsByUserID(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check user id: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", domainerror.NewProfileError(
		domainerror.ErrCodeUserIDGeneration,
		"could not generate a unique user id",
		domainerror.ErrUserIDGeneration,
	)
}
