package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// UpdateScheduledPaymentInput represents a partial update. Nil fields are left unchanged.
type UpdateScheduledPaymentInput struct {
	UserID        string // Empty skips the ownership check (admin console)
	PaymentID     uint
	Name          *string
	Amount        *decimal.Decimal
	DueDay        *int
	IsRecurring   *bool
	SpecificMonth *time.Time
	Category      *entity.Category
}

// UpdateScheduledPaymentOutput represents the updated payment.
type UpdateScheduledPaymentOutput struct {
	Payment    *entity.ScheduledPayment
	Projection finance.PaymentProjection
}

// UpdateScheduledPaymentUseCase handles editing a scheduled payment.
type UpdateScheduledPaymentUseCase struct {
	paymentRepo adapter.ScheduledPaymentRepository
	clock       adapter.Clock
}

// NewUpdateScheduledPaymentUseCase creates a new UpdateScheduledPaymentUseCase instance.
func NewUpdateScheduledPaymentUseCase(
	paymentRepo adapter.ScheduledPaymentRepository,
	clock adapter.Clock,
) *UpdateScheduledPaymentUseCase {
	return &UpdateScheduledPaymentUseCase{
		paymentRepo: paymentRepo,
		clock:       clock,
	}
}

// Execute performs the update.
func (uc *UpdateScheduledPaymentUseCase) Execute(ctx context.Context, input UpdateScheduledPaymentInput) (*UpdateScheduledPaymentOutput, error) {
	payment, err := findPayment(ctx, uc.paymentRepo, input.UserID, input.PaymentID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewScheduleError(
				domainerror.ErrCodeMissingPaymentName,
				"payment name is required",
				domainerror.ErrMissingPaymentName,
			)
		}
		payment.Name = name
	}
	if input.Amount != nil {
		payment.Amount = input.Amount.Round(2)
	}
	if input.DueDay != nil {
		payment.DueDay = *input.DueDay
	}
	if input.IsRecurring != nil {
		payment.IsRecurring = *input.IsRecurring
	}
	if input.SpecificMonth != nil {
		m := monthStart(*input.SpecificMonth)
		payment.SpecificMonth = &m
	}
	if payment.IsRecurring {
		payment.SpecificMonth = nil
	}
	if input.Category != nil {
		payment.Category = *input.Category
	}

	if err := validatePayment(payment.Amount, payment.DueDay, payment.IsRecurring, payment.SpecificMonth, payment.Category); err != nil {
		return nil, err
	}

	payment.UpdatedAt = time.Now().UTC()
	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update scheduled payment: %w", err)
	}

	return &UpdateScheduledPaymentOutput{
		Payment:    payment,
		Projection: finance.ProjectPayment(payment, uc.clock.Now()),
	}, nil
}
