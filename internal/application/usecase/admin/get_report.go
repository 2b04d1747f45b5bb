package admin

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// GetReportOutput is the aggregate admin report.
type GetReportOutput struct {
	UserCount           int64
	TransactionCount    int64
	TotalIncome         decimal.Decimal
	TotalExpense        decimal.Decimal
	TotalCreditUsed     decimal.Decimal
	TotalCreditLimit    decimal.Decimal
	ObligationsDue      decimal.Decimal // Unsettled payments due this month, all users
	ObligationsDueCount int
	ExpenseByCategory   []adapter.CategoryTotal
}

// GetReportUseCase builds the admin summary report.
type GetReportUseCase struct {
	profileRepo     adapter.ProfileRepository
	transactionRepo adapter.TransactionRepository
	paymentRepo     adapter.ScheduledPaymentRepository
	clock           adapter.Clock
}

// NewGetReportUseCase creates a new GetReportUseCase instance.
func NewGetReportUseCase(
	profileRepo adapter.ProfileRepository,
	transactionRepo adapter.TransactionRepository,
	paymentRepo adapter.ScheduledPaymentRepository,
	clock adapter.Clock,
) *GetReportUseCase {
	return &GetReportUseCase{
		profileRepo:     profileRepo,
		transactionRepo: transactionRepo,
		paymentRepo:     paymentRepo,
		clock:           clock,
	}
}

// Execute builds the report.
func (uc *GetReportUseCase) Execute(ctx context.Context) (*GetReportOutput, error) {
	profiles, err := uc.profileRepo.Aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate profiles: %w", err)
	}

	ledger, err := uc.transactionRepo.Summarize(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	payments, err := uc.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled payments: %w", err)
	}

	today := uc.clock.Now()
	dueCount := 0
	for _, p := range payments {
		if finance.IsDueThisMonth(p, today) && !finance.IsSettled(p, today) {
			dueCount++
		}
	}

	return &GetReportOutput{
		UserCount:           profiles.UserCount,
		TransactionCount:    ledger.TransactionCount,
		TotalIncome:         ledger.TotalIncome,
		TotalExpense:        ledger.TotalExpense,
		TotalCreditUsed:     profiles.TotalCreditUsed,
		TotalCreditLimit:    profiles.TotalCreditLimit,
		ObligationsDue:      finance.TotalPayments(payments, today),
		ObligationsDueCount: dueCount,
		ExpenseByCategory:   ledger.ExpenseByCategory,
	}, nil
}
