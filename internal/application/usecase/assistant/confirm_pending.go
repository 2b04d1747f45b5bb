package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/transaction"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

// TransactionRecorder appends a transaction to the ledger.
type TransactionRecorder interface {
	Execute(ctx context.Context, input transaction.RecordTransactionInput) (*transaction.RecordTransactionOutput, error)
}

// ConfirmPendingInput confirms the pending transaction, optionally edited.
type ConfirmPendingInput struct {
	SessionID     uuid.UUID
	UserID        string
	Amount        *decimal.Decimal
	PaymentMethod *entity.PaymentMethod
	Category      *entity.Category
}

// ConfirmPendingOutput represents the recorded transaction.
type ConfirmPendingOutput struct {
	Transaction *entity.Transaction
	Result      *transaction.RecordTransactionOutput
	Reply       string
}

// ConfirmPendingUseCase records the staged transaction through the ledger.
type ConfirmPendingUseCase struct {
	sessions adapter.SessionStore
	recorder TransactionRecorder
}

// NewConfirmPendingUseCase creates a new ConfirmPendingUseCase instance.
func NewConfirmPendingUseCase(sessions adapter.SessionStore, recorder TransactionRecorder) *ConfirmPendingUseCase {
	return &ConfirmPendingUseCase{
		sessions: sessions,
		recorder: recorder,
	}
}

// Execute records the pending transaction and clears it. A rejected transaction
// keeps the pending state so the user can edit and retry.
func (uc *ConfirmPendingUseCase) Execute(ctx context.Context, input ConfirmPendingInput) (*ConfirmPendingOutput, error) {
	if _, err := loadSession(ctx, uc.sessions, input.SessionID, input.UserID); err != nil {
		return nil, err
	}

	release, err := lockSession(ctx, uc.sessions, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := loadSession(ctx, uc.sessions, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}
	if session.Pending == nil {
		return nil, noPendingError()
	}

	pending := *session.Pending
	if input.Amount != nil {
		pending.Amount = *input.Amount
	}
	if input.PaymentMethod != nil && pending.Type == entity.TransactionTypeExpense {
		pending.PaymentMethod = *input.PaymentMethod
	}
	if input.Category != nil {
		pending.Category = *input.Category
	}

	result, err := uc.recorder.Execute(ctx, transaction.RecordTransactionInput{
		UserID:        session.UserID,
		Amount:        pending.Amount,
		Type:          pending.Type,
		PaymentMethod: pending.PaymentMethod,
		Category:      pending.Category,
		Description:   pending.Description,
	})
	if err != nil {
		return nil, err
	}

	session.Pending = nil
	session.UpdatedAt = time.Now().UTC()
	if err := uc.sessions.Save(ctx, session); err != nil {
		// The transaction is already committed; a stale pending would be recorded twice.
		slog.Error("failed to clear pending transaction", "session_id", session.ID, "error", err)
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &ConfirmPendingOutput{
		Transaction: result.Transaction,
		Result:      result,
		Reply:       recordedReply(result.Transaction, result.Balance),
	}, nil
}

// CancelPendingInput discards the pending transaction.
type CancelPendingInput struct {
	SessionID uuid.UUID
	UserID    string
}

// CancelPendingOutput represents the cancellation reply.
type CancelPendingOutput struct {
	Reply string
}

// CancelPendingUseCase discards the staged transaction with no ledger side effects.
type CancelPendingUseCase struct {
	sessions adapter.SessionStore
}

// NewCancelPendingUseCase creates a new CancelPendingUseCase instance.
func NewCancelPendingUseCase(sessions adapter.SessionStore) *CancelPendingUseCase {
	return &CancelPendingUseCase{
		sessions: sessions,
	}
}

// Execute performs the cancellation.
func (uc *CancelPendingUseCase) Execute(ctx context.Context, input CancelPendingInput) (*CancelPendingOutput, error) {
	if _, err := loadSession(ctx, uc.sessions, input.SessionID, input.UserID); err != nil {
		return nil, err
	}

	release, err := lockSession(ctx, uc.sessions, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := loadSession(ctx, uc.sessions, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}
	if session.Pending == nil {
		return nil, noPendingError()
	}

	session.Pending = nil
	session.UpdatedAt = time.Now().UTC()
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &CancelPendingOutput{
		Reply: "Transação cancelada.",
	}, nil
}

func noPendingError() error {
	return domainerror.NewAssistantError(
		domainerror.ErrCodeNoPendingTransaction,
		"no pending transaction to confirm",
		domainerror.ErrNoPendingTransaction,
	)
}
