package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

// DeleteUserInput represents the input for deleting a user.
type DeleteUserInput struct {
	UserID string
}

// DeleteUserUseCase removes a user with everything they own.
type DeleteUserUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewDeleteUserUseCase creates a new DeleteUserUseCase instance.
func NewDeleteUserUseCase(profileRepo adapter.ProfileRepository) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		profileRepo: profileRepo,
	}
}

// Execute performs the deletion in one database transaction.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, input DeleteUserInput) error {
	if err := uc.profileRepo.DeleteCascade(ctx, input.UserID); err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return domainerror.NewAdminError(
				domainerror.ErrCodeAdminUserNotFound,
				"user not found",
				domainerror.ErrProfileNotFound,
			)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("user deleted by admin", "user_id", input.UserID)
	return nil
}
