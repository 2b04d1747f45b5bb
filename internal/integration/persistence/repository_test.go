package persistence_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
	"github.com/finance-tracker/assistant/internal/integration/persistence"
	"github.com/finance-tracker/assistant/internal/testutil"
)

type repos struct {
	profiles     adapter.ProfileRepository
	transactions adapter.TransactionRepository
	goals        adapter.GoalRepository
	payments     adapter.ScheduledPaymentRepository
}

func newRepos(t *testing.T) repos {
	db := testutil.NewDB(t)
	return repos{
		profiles:     persistence.NewProfileRepository(db),
		transactions: persistence.NewTransactionRepository(db),
		goals:        persistence.NewGoalRepository(db),
		payments:     persistence.NewScheduledPaymentRepository(db),
	}
}

func newTx(userID, amount string, txType entity.TransactionType, method entity.PaymentMethod, date time.Time) *entity.Transaction {
	category := entity.CategoryFood
	if txType == entity.TransactionTypeIncome {
		category = entity.CategorySalary
	}
	return entity.NewTransaction(userID, decimal.RequireFromString(amount), txType, method, category, "teste", date)
}

func TestTransactionRepository_RecordUpdatesTotals(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	day := testutil.Date(2024, 3, 15)
	testutil.SeedProfile(t, r.profiles, "10000001", testutil.Money(t, "1000"), testutil.Money(t, "500"), 10, &day)

	require.NoError(t, r.transactions.Record(ctx, newTx("10000001", "200", entity.TransactionTypeIncome, "", day)))
	require.NoError(t, r.transactions.Record(ctx, newTx("10000001", "50.10", entity.TransactionTypeExpense, entity.PaymentMethodDebit, day)))
	require.NoError(t, r.transactions.Record(ctx, newTx("10000001", "120.25", entity.TransactionTypeExpense, entity.PaymentMethodCredit, day)))

	profile, err := r.profiles.FindByUserID(ctx, "10000001")
	require.NoError(t, err)

	assert.Equal(t, "200.00", profile.TotalIncome.StringFixed(2))
	assert.Equal(t, "170.35", profile.TotalExpense.StringFixed(2))
	assert.Equal(t, "50.10", profile.DebitExpense.StringFixed(2))
	assert.Equal(t, "120.25", profile.CreditUsed.StringFixed(2))

	txs, err := r.transactions.FindByUser(ctx, "10000001")
	require.NoError(t, err)
	require.Len(t, txs, 3)

	totals := finance.SumTransactions(txs)
	assert.True(t, totals.TotalIncome.Equal(profile.TotalIncome))
	assert.True(t, totals.TotalExpense.Equal(profile.TotalExpense))
	assert.True(t, totals.DebitExpense.Equal(profile.DebitExpense))
}

func TestTransactionRepository_RecordRejectsOverLimit(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	day := testutil.Date(2024, 3, 15)
	testutil.SeedProfile(t, r.profiles, "10000001", decimal.Zero, testutil.Money(t, "100"), 10, &day)

	require.NoError(t, r.transactions.Record(ctx, newTx("10000001", "100", entity.TransactionTypeExpense, entity.PaymentMethodCredit, day)))

	err := r.transactions.Record(ctx, newTx("10000001", "0.01", entity.TransactionTypeExpense, entity.PaymentMethodCredit, day))
	assert.ErrorIs(t, err, domainerror.ErrInsufficientCredit)

	txs, err := r.transactions.FindByUser(ctx, "10000001")
	require.NoError(t, err)
	assert.Len(t, txs, 1, "rejected charge must not be inserted")

	profile, err := r.profiles.FindByUserID(ctx, "10000001")
	require.NoError(t, err)
	assert.Equal(t, "100.00", profile.CreditUsed.StringFixed(2))
	assert.Equal(t, "100.00", profile.TotalExpense.StringFixed(2))
}

func TestTransactionRepository_RecordAcceptsChargeEqualToAvailableCredit(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	day := testutil.Date(2024, 3, 15)
	testutil.SeedProfile(t, r.profiles, "10000001", decimal.Zero, testutil.Money(t, "0.30"), 10, &day)

	require.NoError(t, r.transactions.Record(ctx, newTx("10000001", "0.10", entity.TransactionTypeExpense, entity.PaymentMethodCredit, day)))
	require.NoError(t, r.transactions.Record(ctx, newTx("10000001", "0.20", entity.TransactionTypeExpense, entity.PaymentMethodCredit, day)))

	profile, err := r.profiles.FindByUserID(ctx, "10000001")
	require.NoError(t, err)
	assert.Equal(t, "0.30", profile.CreditUsed.StringFixed(2))

	err = r.transactions.Record(ctx, newTx("10000001", "0.01", entity.TransactionTypeExpense, entity.PaymentMethodCredit, day))
	assert.ErrorIs(t, err, domainerror.ErrInsufficientCredit)
}

func TestTransactionRepository_RecordWithoutProfile(t *testing.T) {
	r := newRepos(t)
	err := r.transactions.Record(context.Background(), newTx("99999999", "10", entity.TransactionTypeExpense, entity.PaymentMethodDebit, testutil.Date(2024, 3, 15)))
	assert.ErrorIs(t, err, domainerror.ErrProfileNotFound)
}

func TestTransactionRepository_ConcurrentChargesStayWithinLimit(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	day := testutil.Date(2024, 3, 15)
	testutil.SeedProfile(t, r.profiles, "10000001", decimal.Zero, testutil.Money(t, "100"), 10, &day)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.transactions.Record(ctx, newTx("10000001", "30", entity.TransactionTypeExpense, entity.PaymentMethodCredit, day))
		}()
	}
	wg.Wait()

	profile, err := r.profiles.FindByUserID(ctx, "10000001")
	require.NoError(t, err)
	assert.Equal(t, "90.00", profile.CreditUsed.StringFixed(2))

	txs, err := r.transactions.FindByUser(ctx, "10000001")
	require.NoError(t, err)
	assert.Len(t, txs, 3)
}

func TestTransactionRepository_FindByFilter(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	testutil.SeedProfile(t, r.profiles, "10000001", decimal.Zero, decimal.Zero, 10, nil)

	for _, d := range []int{1, 2, 2, 3} {
		require.NoError(t, r.transactions.Record(ctx, newTx("10000001", "10", entity.TransactionTypeExpense, entity.PaymentMethodDebit, testutil.Date(2024, 3, d))))
	}
	require.NoError(t, r.transactions.Record(ctx, newTx("10000001", "99", entity.TransactionTypeIncome, "", testutil.Date(2024, 3, 2))))

	start := testutil.Date(2024, 3, 2)
	end := testutil.Date(2024, 3, 3)
	result, err := r.transactions.FindByFilter(ctx, adapter.TransactionFilter{UserID: "10000001", StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Total)
	assert.Len(t, result.Transactions, 3)

	expense := entity.TransactionTypeExpense
	result, err = r.transactions.FindByFilter(ctx, adapter.TransactionFilter{UserID: "10000001", Type: &expense, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, result.Total)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, 3, result.Transactions[0].Date.Day(), "newest first")
}

func TestTransactionRepository_Summarize(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	day := testutil.Date(2024, 3, 15)
	testutil.SeedProfile(t, r.profiles, "10000001", decimal.Zero, testutil.Money(t, "1000"), 10, &day)
	testutil.SeedProfile(t, r.profiles, "10000002", decimal.Zero, decimal.Zero, 10, &day)

	require.NoError(t, r.transactions.Record(ctx, newTx("10000001", "500", entity.TransactionTypeIncome, "", day)))
	require.NoError(t, r.transactions.Record(ctx, newTx("10000001", "40", entity.TransactionTypeExpense, entity.PaymentMethodCredit, day)))
	require.NoError(t, r.transactions.Record(ctx, newTx("10000002", "60", entity.TransactionTypeExpense, entity.PaymentMethodDebit, day)))

	summary, err := r.transactions.Summarize(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, summary.TransactionCount)
	assert.Equal(t, "500.00", summary.TotalIncome.StringFixed(2))
	assert.Equal(t, "100.00", summary.TotalExpense.StringFixed(2))
	require.Len(t, summary.ExpenseByCategory, 1)
	assert.Equal(t, entity.CategoryFood, summary.ExpenseByCategory[0].Category)

	agg, err := r.profiles.Aggregate(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, agg.UserCount)
	assert.Equal(t, "40.00", agg.TotalCreditUsed.StringFixed(2))
	assert.Equal(t, "1000.00", agg.TotalCreditLimit.StringFixed(2))
}

func TestProfileRepository_ApplyCycleResetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	feb := testutil.Date(2024, 2, 10)
	testutil.SeedProfile(t, r.profiles, "10000001", decimal.Zero, testutil.Money(t, "500"), 10, &feb)
	require.NoError(t, r.transactions.Record(ctx, newTx("10000001", "80", entity.TransactionTypeExpense, entity.PaymentMethodCredit, feb)))

	mar := testutil.Date(2024, 3, 10)
	changed, err := r.profiles.ApplyCycleReset(ctx, "10000001", mar, true)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = r.profiles.ApplyCycleReset(ctx, "10000001", mar, true)
	require.NoError(t, err)
	assert.False(t, changed, "second reset for the same cycle must not apply")

	profile, err := r.profiles.FindByUserID(ctx, "10000001")
	require.NoError(t, err)
	assert.True(t, profile.CreditUsed.IsZero())
	require.NotNil(t, profile.LastCreditResetAt)
	assert.True(t, profile.LastCreditResetAt.Equal(mar))
	assert.Equal(t, "80.00", profile.TotalExpense.StringFixed(2), "reset keeps expense history")
}

func TestProfileRepository_ApplyCycleResetInitializesMarker(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	testutil.SeedProfile(t, r.profiles, "10000001", decimal.Zero, testutil.Money(t, "500"), 10, nil)

	marker := testutil.Date(2024, 3, 10)
	changed, err := r.profiles.ApplyCycleReset(ctx, "10000001", marker, false)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = r.profiles.ApplyCycleReset(ctx, "10000001", marker, false)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestProfileRepository_UpdateAndList(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	profile := testutil.SeedProfile(t, r.profiles, "10000001", decimal.Zero, decimal.Zero, 10, nil)
	testutil.SeedProfile(t, r.profiles, "10000002", decimal.Zero, decimal.Zero, 5, nil)

	email := "ana@example.com"
	profile.FullName = "Ana"
	profile.Email = &email
	profile.CreditDueDay = 20
	require.NoError(t, r.profiles.Update(ctx, profile))

	got, err := r.profiles.FindByUserID(ctx, "10000001")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FullName)
	require.NotNil(t, got.Email)
	assert.Equal(t, email, *got.Email)
	assert.Equal(t, 20, got.CreditDueDay)

	exists, err := r.profiles.ExistsByUserID(ctx, "10000002")
	require.NoError(t, err)
	assert.True(t, exists)

	page, total, err := r.profiles.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, page, 1)

	missing := entity.NewProfile("99999999", "x", decimal.Zero, decimal.Zero, 1)
	assert.ErrorIs(t, r.profiles.Update(ctx, missing), domainerror.ErrProfileNotFound)
}

func TestProfileRepository_DeleteCascade(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	day := testutil.Date(2024, 3, 15)
	testutil.SeedProfile(t, r.profiles, "10000001", decimal.Zero, decimal.Zero, 10, &day)
	testutil.SeedProfile(t, r.profiles, "10000002", decimal.Zero, decimal.Zero, 10, &day)

	for _, userID := range []string{"10000001", "10000002"} {
		require.NoError(t, r.transactions.Record(ctx, newTx(userID, "10", entity.TransactionTypeExpense, entity.PaymentMethodDebit, day)))
		require.NoError(t, r.goals.Create(ctx, entity.NewGoal(userID, "Viagem", decimal.NewFromInt(1000), decimal.Zero, day.AddDate(0, 6, 0))))
		require.NoError(t, r.payments.Create(ctx, entity.NewScheduledPayment(userID, "Aluguel", decimal.NewFromInt(900), 5, true, nil, entity.CategoryBills)))
	}

	require.NoError(t, r.profiles.DeleteCascade(ctx, "10000001"))

	_, err := r.profiles.FindByUserID(ctx, "10000001")
	assert.ErrorIs(t, err, domainerror.ErrProfileNotFound)

	txs, err := r.transactions.FindByUser(ctx, "10000001")
	require.NoError(t, err)
	assert.Empty(t, txs)
	goals, err := r.goals.FindByUserID(ctx, "10000001")
	require.NoError(t, err)
	assert.Empty(t, goals)
	payments, err := r.payments.FindByUserID(ctx, "10000001")
	require.NoError(t, err)
	assert.Empty(t, payments)

	others, err := r.transactions.FindByUser(ctx, "10000002")
	require.NoError(t, err)
	assert.Len(t, others, 1)

	assert.ErrorIs(t, r.profiles.DeleteCascade(ctx, "10000001"), domainerror.ErrProfileNotFound)
}

func TestGoalRepository(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	goal := entity.NewGoal("10000001", "Reserva", decimal.NewFromInt(1000), decimal.NewFromInt(100), testutil.Date(2024, 12, 31))
	require.NoError(t, r.goals.Create(ctx, goal))
	require.NotZero(t, goal.ID)

	require.NoError(t, r.goals.AddContribution(ctx, goal.ID, testutil.Money(t, "50.50")))

	got, err := r.goals.FindByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "150.50", got.CurrentAmount.StringFixed(2))

	require.NoError(t, r.goals.Delete(ctx, goal.ID))
	_, err = r.goals.FindByID(ctx, goal.ID)
	assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)
	assert.ErrorIs(t, r.goals.AddContribution(ctx, goal.ID, decimal.NewFromInt(1)), domainerror.ErrGoalNotFound)
}

func TestScheduledPaymentRepository(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	month := testutil.Date(2024, 4, 1)
	rent := entity.NewScheduledPayment("10000001", "Aluguel", decimal.NewFromInt(900), 20, true, nil, entity.CategoryBills)
	ipva := entity.NewScheduledPayment("10000001", "IPVA", decimal.NewFromInt(300), 5, false, &month, entity.CategoryBills)
	other := entity.NewScheduledPayment("10000002", "Internet", decimal.NewFromInt(100), 1, true, nil, entity.CategoryBills)
	for _, p := range []*entity.ScheduledPayment{rent, ipva, other} {
		require.NoError(t, r.payments.Create(ctx, p))
	}

	mine, err := r.payments.FindByUserID(ctx, "10000001")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "IPVA", mine[0].Name, "ordered by due day")
	require.NotNil(t, mine[0].SpecificMonth)
	assert.Equal(t, time.April, mine[0].SpecificMonth.Month())

	all, err := r.payments.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	paidAt := testutil.Date(2024, 4, 5)
	rent.LastPaidAt = &paidAt
	rent.Amount = decimal.NewFromInt(950)
	require.NoError(t, r.payments.Update(ctx, rent))

	got, err := r.payments.FindByID(ctx, rent.ID)
	require.NoError(t, err)
	assert.Equal(t, "950.00", got.Amount.StringFixed(2))
	require.NotNil(t, got.LastPaidAt)

	require.NoError(t, r.payments.Delete(ctx, rent.ID))
	assert.ErrorIs(t, r.payments.Delete(ctx, rent.ID), domainerror.ErrScheduledPaymentNotFound)
}
