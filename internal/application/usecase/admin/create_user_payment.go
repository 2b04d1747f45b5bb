package admin

import (
	"context"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/schedule"
)

// CreateUserPaymentUseCase schedules a payment on behalf of a user.
type CreateUserPaymentUseCase struct {
	profileRepo adapter.ProfileRepository
	create      *schedule.CreateScheduledPaymentUseCase
}

// NewCreateUserPaymentUseCase creates a new CreateUserPaymentUseCase instance.
func NewCreateUserPaymentUseCase(
	profileRepo adapter.ProfileRepository,
	create *schedule.CreateScheduledPaymentUseCase,
) *CreateUserPaymentUseCase {
	return &CreateUserPaymentUseCase{
		profileRepo: profileRepo,
		create:      create,
	}
}

// Execute checks the user exists and creates the payment.
func (uc *CreateUserPaymentUseCase) Execute(ctx context.Context, input schedule.CreateScheduledPaymentInput) (*schedule.CreateScheduledPaymentOutput, error) {
	if _, err := findUser(ctx, uc.profileRepo, input.UserID); err != nil {
		return nil, err
	}
	return uc.create.Execute(ctx, input)
}
