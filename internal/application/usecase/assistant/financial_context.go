package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/credit"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// snapshot is everything the assistant knows about a user at message time.
type snapshot struct {
	Profile  *entity.Profile // Nil when the user has no profile
	Balance  finance.Balance
	Credit   finance.CreditStatus
	Payments []*entity.ScheduledPayment
	Recent   []*entity.Transaction
	Today    time.Time
}

// contextBuilder loads user finances for the parser and for local query answers.
type contextBuilder struct {
	profileRepo     adapter.ProfileRepository
	transactionRepo adapter.TransactionRepository
	paymentRepo     adapter.ScheduledPaymentRepository
	guard           *credit.CycleGuard
	clock           adapter.Clock
	recentLimit     int
}

func (b *contextBuilder) load(ctx context.Context, userID string) (*snapshot, error) {
	s := &snapshot{Today: b.clock.Now()}

	profile, err := b.profileRepo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		if _, err := b.guard.Apply(ctx, profile, s.Today); err != nil {
			return nil, err
		}
		s.Profile = profile
		s.Credit = finance.CreditStatusFor(profile, s.Today)
	case !errors.Is(err, domainerror.ErrProfileNotFound):
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	s.Balance = finance.ProfileBalance(s.Profile)

	recent, err := b.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID: userID,
		Limit:  b.recentLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}
	s.Recent = recent.Transactions

	s.Payments, err = b.paymentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduled payments: %w", err)
	}

	return s, nil
}

// financialContext converts the snapshot into the parser payload.
func (s *snapshot) financialContext() entity.FinancialContext {
	fc := entity.FinancialContext{
		Today:              finance.CivilDate(s.Today),
		Balance:            s.Balance.Balance,
		DebitBalance:       s.Balance.DebitBalance,
		CreditUsed:         s.Balance.CreditUsed,
		RecentTransactions: s.Recent,
		ScheduledPayments:  s.Payments,
	}
	if s.Profile != nil {
		fc.CreditLimit = s.Profile.CreditLimit
		fc.AvailableCredit = s.Profile.AvailableCredit()
		fc.CreditDueDay = s.Profile.CreditDueDay
		fc.SalaryAmount = s.Profile.SalaryAmount
		fc.SalaryDay = s.Profile.SalaryDay
		fc.AdvanceAmount = s.Profile.AdvanceAmount
		fc.AdvanceDay = s.Profile.AdvanceDay
	}
	return fc
}
