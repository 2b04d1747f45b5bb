package schedule

import (
	"context"
	"fmt"

	"github.com/finance-tracker/assistant/internal/application/adapter"
)

// DeleteScheduledPaymentInput represents the input for deleting a scheduled payment.
type DeleteScheduledPaymentInput struct {
	UserID    string // Empty skips the ownership check (admin console)
	PaymentID uint
}

// DeleteScheduledPaymentUseCase handles deleting a scheduled payment.
type DeleteScheduledPaymentUseCase struct {
	paymentRepo adapter.ScheduledPaymentRepository
}

// NewDeleteScheduledPaymentUseCase creates a new DeleteScheduledPaymentUseCase instance.
func NewDeleteScheduledPaymentUseCase(paymentRepo adapter.ScheduledPaymentRepository) *DeleteScheduledPaymentUseCase {
	return &DeleteScheduledPaymentUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteScheduledPaymentUseCase) Execute(ctx context.Context, input DeleteScheduledPaymentInput) error {
	payment, err := findPayment(ctx, uc.paymentRepo, input.UserID, input.PaymentID)
	if err != nil {
		return err
	}

	if err := uc.paymentRepo.Delete(ctx, payment.ID); err != nil {
		return fmt.Errorf("failed to delete scheduled payment: %w", err)
	}
	return nil
}
