package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// GetProfileInput represents the input for reading a profile.
type GetProfileInput struct {
	UserID string
}

// GetProfileOutput represents a profile with its derived balance.
type GetProfileOutput struct {
	Profile *entity.Profile
	Balance finance.Balance
}

// GetProfileUseCase handles reading a profile.
type GetProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(profileRepo adapter.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{
		profileRepo: profileRepo,
	}
}

// Execute performs the lookup.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	profile, err := findProfile(ctx, uc.profileRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetProfileOutput{
		Profile: profile,
		Balance: finance.ProfileBalance(profile),
	}, nil
}

func findProfile(ctx context.Context, repo adapter.ProfileRepository, userID string) (*entity.Profile, error) {
	profile, err := repo.FindByUserID(ctx, userID)
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
	return profile, nil
}
