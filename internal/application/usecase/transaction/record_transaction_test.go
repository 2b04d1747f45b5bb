package transaction_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/credit"
	"github.com/finance-tracker/assistant/internal/application/usecase/transaction"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
	"github.com/finance-tracker/assistant/internal/integration/persistence"
	"github.com/finance-tracker/assistant/internal/testutil"
)

type fixture struct {
	profiles     adapter.ProfileRepository
	transactions adapter.TransactionRepository
	clock        *testutil.FixedClock
	record       *transaction.RecordTransactionUseCase
}

func newFixture(t *testing.T, today time.Time) *fixture {
	db := testutil.NewDB(t)
	f := &fixture{
		profiles:     persistence.NewProfileRepository(db),
		transactions: persistence.NewTransactionRepository(db),
		clock:        &testutil.FixedClock{T: today},
	}
	f.record = transaction.NewRecordTransactionUseCase(f.transactions, f.profiles, credit.NewCycleGuard(f.profiles), f.clock)
	return f
}

func TestRecordTransaction_Validation(t *testing.T) {
	f := newFixture(t, testutil.Date(2024, 3, 15))
	testutil.SeedProfile(t, f.profiles, "10000001", decimal.Zero, decimal.Zero, 10, nil)

	tests := []struct {
		name     string
		input    transaction.RecordTransactionInput
		wantCode domainerror.TransactionErrorCode
	}{
		{
			name:     "invalid type",
			input:    transaction.RecordTransactionInput{UserID: "10000001", Amount: decimal.NewFromInt(10), Type: "transfer"},
			wantCode: domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name:     "zero amount",
			input:    transaction.RecordTransactionInput{UserID: "10000001", Amount: decimal.Zero, Type: entity.TransactionTypeExpense},
			wantCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:     "amount rounds to zero",
			input:    transaction.RecordTransactionInput{UserID: "10000001", Amount: decimal.RequireFromString("0.001"), Type: entity.TransactionTypeExpense},
			wantCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:     "unknown payment method",
			input:    transaction.RecordTransactionInput{UserID: "10000001", Amount: decimal.NewFromInt(10), Type: entity.TransactionTypeExpense, PaymentMethod: "pix"},
			wantCode: domainerror.ErrCodeInvalidPaymentMethod,
		},
		{
			name:     "income category on expense",
			input:    transaction.RecordTransactionInput{UserID: "10000001", Amount: decimal.NewFromInt(10), Type: entity.TransactionTypeExpense, Category: entity.CategorySalary},
			wantCode: domainerror.ErrCodeInvalidCategory,
		},
		{
			name:     "description too long",
			input:    transaction.RecordTransactionInput{UserID: "10000001", Amount: decimal.NewFromInt(10), Type: entity.TransactionTypeExpense, Description: strings.Repeat("a", 256)},
			wantCode: domainerror.ErrCodeDescriptionTooLong,
		},
		{
			name:     "missing profile",
			input:    transaction.RecordTransactionInput{UserID: "99999999", Amount: decimal.NewFromInt(10), Type: entity.TransactionTypeExpense},
			wantCode: domainerror.ErrCodeTransactionProfileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.record.Execute(context.Background(), tt.input)
			var txErr *domainerror.TransactionError
			require.True(t, errors.As(err, &txErr), "got %v", err)
			assert.Equal(t, tt.wantCode, txErr.Code)
		})
	}
}

func TestRecordTransaction_Defaults(t *testing.T) {
	f := newFixture(t, testutil.Date(2024, 3, 15))
	testutil.SeedProfile(t, f.profiles, "10000001", decimal.NewFromInt(100), decimal.NewFromInt(300), 10, nil)

	out, err := f.record.Execute(context.Background(), transaction.RecordTransactionInput{
		UserID:        "10000001",
		Amount:        decimal.RequireFromString("1000.456"),
		Type:          entity.TransactionTypeIncome,
		PaymentMethod: entity.PaymentMethodCredit,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentMethodDebit, out.Transaction.PaymentMethod, "income is always debit")
	assert.Equal(t, entity.CategoryOther, out.Transaction.Category)
	assert.Equal(t, "1000.46", out.Transaction.Amount.StringFixed(2))
	assert.Equal(t, "1100.46", out.Balance.Balance.StringFixed(2))
	assert.True(t, out.Credit.Used.IsZero())
}

func TestRecordTransaction_CreditLifecycle(t *testing.T) {
	ctx := context.Background()
	feb := testutil.Date(2024, 2, 10)
	f := newFixture(t, testutil.Date(2024, 3, 5))
	testutil.SeedProfile(t, f.profiles, "10000001", decimal.NewFromInt(1000), decimal.NewFromInt(500), 10, &feb)

	out, err := f.record.Execute(ctx, transaction.RecordTransactionInput{
		UserID:        "10000001",
		Amount:        decimal.NewFromInt(200),
		Type:          entity.TransactionTypeExpense,
		PaymentMethod: entity.PaymentMethodCredit,
		Category:      entity.CategoryShopping,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-10", out.Transaction.BillingCycle)
	assert.Equal(t, "200.00", out.Credit.Used.StringFixed(2))
	assert.Equal(t, "300.00", out.Credit.Available.StringFixed(2))
	assert.Equal(t, "800.00", out.Balance.Balance.StringFixed(2))
	assert.Equal(t, "1000.00", out.Balance.DebitBalance.StringFixed(2))

	_, err = f.record.Execute(ctx, transaction.RecordTransactionInput{
		UserID:        "10000001",
		Amount:        decimal.RequireFromString("300.01"),
		Type:          entity.TransactionTypeExpense,
		PaymentMethod: entity.PaymentMethodCredit,
	})
	var creditErr *domainerror.CreditError
	require.True(t, errors.As(err, &creditErr))
	assert.Equal(t, domainerror.ErrCodeInsufficientCredit, creditErr.Code)

	// The due day opens a new cycle and frees the limit.
	f.clock.T = testutil.Date(2024, 3, 10)
	out, err = f.record.Execute(ctx, transaction.RecordTransactionInput{
		UserID:        "10000001",
		Amount:        decimal.NewFromInt(450),
		Type:          entity.TransactionTypeExpense,
		PaymentMethod: entity.PaymentMethodCredit,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", out.Transaction.BillingCycle)
	assert.Equal(t, "450.00", out.Credit.Used.StringFixed(2))
	assert.Equal(t, "350.00", out.Balance.Balance.StringFixed(2), "reset does not erase expense history")

	txs, err := f.transactions.FindByUser(ctx, "10000001")
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestRecordTransaction_InitializesMissingMarkerWithoutReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.Date(2024, 3, 15))
	profile := testutil.SeedProfile(t, f.profiles, "10000001", decimal.Zero, decimal.NewFromInt(500), 10, nil)
	require.NoError(t, f.profiles.RepairTotals(ctx, profile.UserID, finance.Totals{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero, DebitExpense: decimal.Zero}, decimal.NewFromInt(120)))

	out, err := f.record.Execute(ctx, transaction.RecordTransactionInput{
		UserID: "10000001",
		Amount: decimal.NewFromInt(10),
		Type:   entity.TransactionTypeExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, "120.00", out.Credit.Used.StringFixed(2))
	assert.Equal(t, "2024-03-10", out.Credit.BillingCycle)
}

func TestGetDayTransactions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.Date(2024, 3, 15))
	testutil.SeedProfile(t, f.profiles, "10000001", decimal.Zero, decimal.Zero, 10, nil)

	for _, d := range []time.Time{testutil.Date(2024, 3, 14), testutil.Date(2024, 3, 15), testutil.Date(2024, 3, 15).Add(20 * time.Hour)} {
		date := d
		_, err := f.record.Execute(ctx, transaction.RecordTransactionInput{
			UserID: "10000001",
			Amount: decimal.NewFromInt(10),
			Type:   entity.TransactionTypeExpense,
			Date:   &date,
		})
		require.NoError(t, err)
	}

	uc := transaction.NewGetDayTransactionsUseCase(f.transactions)
	out, err := uc.Execute(ctx, transaction.GetDayTransactionsInput{UserID: "10000001", Date: testutil.Date(2024, 3, 15)})
	require.NoError(t, err)
	assert.Len(t, out.Transactions, 2)
	assert.Equal(t, "20.00", out.Totals.TotalExpense.StringFixed(2))

	list, err := transaction.NewListTransactionsUseCase(f.transactions).Execute(ctx, transaction.ListTransactionsInput{UserID: "10000001"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.Total)
}
