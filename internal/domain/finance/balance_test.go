package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func txn(amount string, typ entity.TransactionType, method entity.PaymentMethod) *entity.Transaction {
	return &entity.Transaction{
		UserID:        "12345678",
		Amount:        dec(amount),
		Type:          typ,
		PaymentMethod: method,
		Category:      entity.CategoryOther,
		Date:          time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCalculateBalance(t *testing.T) {
	t.Run("income plus debit expense", func(t *testing.T) {
		txs := []*entity.Transaction{
			txn("500", entity.TransactionTypeIncome, entity.PaymentMethodDebit),
			txn("200", entity.TransactionTypeExpense, entity.PaymentMethodDebit),
		}

		got := CalculateBalance(dec("1000"), txs, decimal.Zero)

		assert.True(t, got.Balance.Equal(dec("1300")), "balance = %s", got.Balance)
		assert.True(t, got.DebitBalance.Equal(dec("1300")), "debit balance = %s", got.DebitBalance)
		assert.True(t, got.TotalIncome.Equal(dec("500")))
		assert.True(t, got.TotalExpense.Equal(dec("200")))
	})

	t.Run("credit expenses only reduce the blended balance", func(t *testing.T) {
		txs := []*entity.Transaction{
			txn("100", entity.TransactionTypeExpense, entity.PaymentMethodDebit),
			txn("300", entity.TransactionTypeExpense, entity.PaymentMethodCredit),
		}

		got := CalculateBalance(dec("1000"), txs, dec("300"))

		assert.True(t, got.Balance.Equal(dec("600")))
		assert.True(t, got.DebitBalance.Equal(dec("900")))
		assert.True(t, got.DebitExpense.Equal(dec("100")))
		assert.True(t, got.CreditUsed.Equal(dec("300")))
	})

	t.Run("legacy expenses without method count as debit", func(t *testing.T) {
		txs := []*entity.Transaction{
			txn("40", entity.TransactionTypeExpense, ""),
		}

		got := CalculateBalance(decimal.Zero, txs, decimal.Zero)

		assert.True(t, got.DebitExpense.Equal(dec("40")))
		assert.True(t, got.DebitBalance.Equal(dec("-40")))
	})

	t.Run("empty history keeps the initial balance", func(t *testing.T) {
		got := CalculateBalance(dec("-25.50"), nil, decimal.Zero)

		assert.True(t, got.Balance.Equal(dec("-25.50")))
		assert.True(t, got.DebitBalance.Equal(dec("-25.50")))
	})

	t.Run("decimal amounts do not drift", func(t *testing.T) {
		txs := make([]*entity.Transaction, 0, 10)
		for i := 0; i < 10; i++ {
			txs = append(txs, txn("0.1", entity.TransactionTypeIncome, entity.PaymentMethodDebit))
		}

		got := CalculateBalance(decimal.Zero, txs, decimal.Zero)

		assert.True(t, got.Balance.Equal(dec("1")), "balance = %s", got.Balance)
	})
}

func TestBalanceIdentity(t *testing.T) {
	histories := [][]*entity.Transaction{
		{},
		{txn("10", entity.TransactionTypeIncome, entity.PaymentMethodDebit)},
		{
			txn("10.10", entity.TransactionTypeIncome, entity.PaymentMethodDebit),
			txn("3.33", entity.TransactionTypeExpense, entity.PaymentMethodCredit),
			txn("7.77", entity.TransactionTypeExpense, entity.PaymentMethodDebit),
			txn("1", entity.TransactionTypeExpense, ""),
		},
	}

	initial := dec("250.25")
	for i, txs := range histories {
		got := CalculateBalance(initial, txs, decimal.Zero)

		assert.True(t, got.Balance.Equal(initial.Add(got.TotalIncome).Sub(got.TotalExpense)), "history %d", i)
		assert.True(t, got.DebitBalance.Equal(initial.Add(got.TotalIncome).Sub(got.DebitExpense)), "history %d", i)
	}
}

func TestProfileBalance(t *testing.T) {
	t.Run("nil profile yields zero state", func(t *testing.T) {
		got := ProfileBalance(nil)

		assert.True(t, got.Balance.IsZero())
		assert.True(t, got.DebitBalance.IsZero())
		assert.True(t, got.CreditUsed.IsZero())
	})

	t.Run("running totals match a full recompute", func(t *testing.T) {
		txs := []*entity.Transaction{
			txn("500", entity.TransactionTypeIncome, entity.PaymentMethodDebit),
			txn("120", entity.TransactionTypeExpense, entity.PaymentMethodCredit),
			txn("80", entity.TransactionTypeExpense, entity.PaymentMethodDebit),
		}
		totals := SumTransactions(txs)

		profile := entity.NewProfile("12345678", "Ana", dec("1000"), dec("5000"), 5)
		profile.TotalIncome = totals.TotalIncome
		profile.TotalExpense = totals.TotalExpense
		profile.DebitExpense = totals.DebitExpense
		profile.CreditUsed = dec("120")

		assert.Equal(t, CalculateBalance(dec("1000"), txs, dec("120")), ProfileBalance(profile))
	})
}

func TestCreditUsedInCycle(t *testing.T) {
	current := txn("300", entity.TransactionTypeExpense, entity.PaymentMethodCredit)
	current.BillingCycle = "2026-10-05"
	previous := txn("900", entity.TransactionTypeExpense, entity.PaymentMethodCredit)
	previous.BillingCycle = "2026-09-05"
	debit := txn("50", entity.TransactionTypeExpense, entity.PaymentMethodDebit)
	debit.BillingCycle = "2026-10-05"

	used := CreditUsedInCycle([]*entity.Transaction{current, previous, debit}, "2026-10-05")

	assert.True(t, used.Equal(dec("300")), "used = %s", used)
}
