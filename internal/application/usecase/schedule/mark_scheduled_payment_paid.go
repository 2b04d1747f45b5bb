package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/transaction"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// TransactionRecorder appends a transaction to the ledger.
type TransactionRecorder interface {
	Execute(ctx context.Context, input transaction.RecordTransactionInput) (*transaction.RecordTransactionOutput, error)
}

// MarkScheduledPaymentPaidInput represents the input for settling a scheduled payment.
type MarkScheduledPaymentPaidInput struct {
	UserID        string
	PaymentID     uint
	RecordExpense bool
	PaymentMethod entity.PaymentMethod // Used when RecordExpense is set, defaults to debit
}

// MarkScheduledPaymentPaidOutput represents the settled payment.
type MarkScheduledPaymentPaidOutput struct {
	Payment     *entity.ScheduledPayment
	Projection  finance.PaymentProjection
	Transaction *entity.Transaction // Set when an expense was recorded
}

// MarkScheduledPaymentPaidUseCase settles a scheduled payment for the current cycle.
type MarkScheduledPaymentPaidUseCase struct {
	paymentRepo adapter.ScheduledPaymentRepository
	recorder    TransactionRecorder
	clock       adapter.Clock
}

// NewMarkScheduledPaymentPaidUseCase creates a new MarkScheduledPaymentPaidUseCase instance.
func NewMarkScheduledPaymentPaidUseCase(
	paymentRepo adapter.ScheduledPaymentRepository,
	recorder TransactionRecorder,
	clock adapter.Clock,
) *MarkScheduledPaymentPaidUseCase {
	return &MarkScheduledPaymentPaidUseCase{
		paymentRepo: paymentRepo,
		recorder:    recorder,
		clock:       clock,
	}
}

// Execute marks the payment as paid. When RecordExpense is set the matching
// expense is recorded too, and a rejected expense leaves the payment unpaid.
func (uc *MarkScheduledPaymentPaidUseCase) Execute(ctx context.Context, input MarkScheduledPaymentPaidInput) (*MarkScheduledPaymentPaidOutput, error) {
	payment, err := findPayment(ctx, uc.paymentRepo, input.UserID, input.PaymentID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if finance.IsSettled(payment, now) {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeAlreadyPaid,
			"scheduled payment is already paid for this cycle",
			domainerror.ErrPaymentAlreadyPaid,
		)
	}

	output := &MarkScheduledPaymentPaidOutput{}

	// Settled before the expense is recorded; a rejected expense reverts it.
	previousPaidAt := payment.LastPaidAt
	payment.MarkPaid(now)
	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to mark scheduled payment paid: %w", err)
	}

	if input.RecordExpense {
		recorded, err := uc.recorder.Execute(ctx, transaction.RecordTransactionInput{
			UserID:        payment.UserID,
			Amount:        payment.Amount,
			Type:          entity.TransactionTypeExpense,
			PaymentMethod: input.PaymentMethod,
			Category:      payment.Category,
			Description:   payment.Name,
		})
		if err != nil {
			uc.revertPaid(ctx, payment, previousPaidAt)
			return nil, err
		}
		output.Transaction = recorded.Transaction
	}

	slog.Info("scheduled payment paid",
		"user_id", payment.UserID,
		"payment_id", payment.ID,
		"recorded_expense", input.RecordExpense,
	)

	output.Payment = payment
	output.Projection = finance.ProjectPayment(payment, now)
	return output, nil
}

// revertPaid restores the settle marker after the expense was rejected.
func (uc *MarkScheduledPaymentPaidUseCase) revertPaid(ctx context.Context, payment *entity.ScheduledPayment, previousPaidAt *time.Time) {
	payment.LastPaidAt = previousPaidAt
	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		slog.Error("failed to revert scheduled payment after rejected expense",
			"user_id", payment.UserID,
			"payment_id", payment.ID,
			"error", err,
		)
	}
}
