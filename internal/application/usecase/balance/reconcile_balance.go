package balance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/credit"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// ReconcileBalanceInput represents the input for reconciling a balance.
type ReconcileBalanceInput struct {
	UserID string
}

// ReconcileBalanceOutput reports the stored and recomputed balances.
type ReconcileBalanceOutput struct {
	Stored     finance.Balance
	Recomputed finance.Balance
	Drift      bool
}

// ReconcileBalanceUseCase recomputes a balance from the full transaction history
// and repairs the running totals when they disagree.
type ReconcileBalanceUseCase struct {
	profileRepo     adapter.ProfileRepository
	transactionRepo adapter.TransactionRepository
	guard           *credit.CycleGuard
	clock           adapter.Clock
}

// NewReconcileBalanceUseCase creates a new ReconcileBalanceUseCase instance.
func NewReconcileBalanceUseCase(
	profileRepo adapter.ProfileRepository,
	transactionRepo adapter.TransactionRepository,
	guard *credit.CycleGuard,
	clock adapter.Clock,
) *ReconcileBalanceUseCase {
	return &ReconcileBalanceUseCase{
		profileRepo:     profileRepo,
		transactionRepo: transactionRepo,
		guard:           guard,
		clock:           clock,
	}
}

// Execute performs the reconciliation.
func (uc *ReconcileBalanceUseCase) Execute(ctx context.Context, input ReconcileBalanceInput) (*ReconcileBalanceOutput, error) {
	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
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

	if _, err := uc.guard.Apply(ctx, profile, uc.clock.Now()); err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	creditUsed := finance.CreditUsedInCycle(transactions, profile.BillingCycle())
	stored := finance.ProfileBalance(profile)
	recomputed := finance.CalculateBalance(profile.InitialBalance, transactions, creditUsed)

	drift := !stored.TotalIncome.Equal(recomputed.TotalIncome) ||
		!stored.TotalExpense.Equal(recomputed.TotalExpense) ||
		!stored.DebitExpense.Equal(recomputed.DebitExpense) ||
		!stored.CreditUsed.Equal(recomputed.CreditUsed)

	if drift {
		totals := finance.SumTransactions(transactions)
		if err := uc.profileRepo.RepairTotals(ctx, input.UserID, totals, creditUsed); err != nil {
			return nil, fmt.Errorf("failed to repair totals: %w", err)
		}
		slog.Warn("balance drift repaired",
			"user_id", input.UserID,
			"stored_balance", stored.Balance.StringFixed(2),
			"recomputed_balance", recomputed.Balance.StringFixed(2),
		)
	}

	return &ReconcileBalanceOutput{
		Stored:     stored,
		Recomputed: recomputed,
		Drift:      drift,
	}, nil
}
