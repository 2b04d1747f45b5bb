package finance

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// Balance is the derived view of a user's money.
type Balance struct {
	Balance      decimal.Decimal // initial + income - all expenses
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	DebitExpense decimal.Decimal
	DebitBalance decimal.Decimal // initial + income - debit expenses
	CreditUsed   decimal.Decimal
}

// Totals are the running sums a ledger keeps per user.
type Totals struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	DebitExpense decimal.Decimal
}

// SumTransactions folds a transaction history into income/expense totals.
// Expenses without a payment method count as debit.
func SumTransactions(transactions []*entity.Transaction) Totals {
	totals := Totals{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		DebitExpense: decimal.Zero,
	}

	for _, t := range transactions {
		switch t.Type {
		case entity.TransactionTypeIncome:
			totals.TotalIncome = totals.TotalIncome.Add(t.Amount)
		case entity.TransactionTypeExpense:
			totals.TotalExpense = totals.TotalExpense.Add(t.Amount)
			if t.IsDebitExpense() {
				totals.DebitExpense = totals.DebitExpense.Add(t.Amount)
			}
		}
	}

	return totals
}

// CalculateBalance recomputes the balance from scratch. creditUsed is taken
// from the profile as-is; it is maintained by the write path.
func CalculateBalance(initialBalance decimal.Decimal, transactions []*entity.Transaction, creditUsed decimal.Decimal) Balance {
	return BalanceFromTotals(initialBalance, SumTransactions(transactions), creditUsed)
}

// BalanceFromTotals derives the balance from already accumulated totals.
func BalanceFromTotals(initialBalance decimal.Decimal, totals Totals, creditUsed decimal.Decimal) Balance {
	return Balance{
		Balance:      initialBalance.Add(totals.TotalIncome).Sub(totals.TotalExpense),
		TotalIncome:  totals.TotalIncome,
		TotalExpense: totals.TotalExpense,
		DebitExpense: totals.DebitExpense,
		DebitBalance: initialBalance.Add(totals.TotalIncome).Sub(totals.DebitExpense),
		CreditUsed:   creditUsed,
	}
}

// ProfileBalance derives the balance from the running totals stored on the profile.
// A nil profile yields the zero state.
func ProfileBalance(p *entity.Profile) Balance {
	if p == nil {
		return BalanceFromTotals(decimal.Zero, Totals{}, decimal.Zero)
	}
	return BalanceFromTotals(p.InitialBalance, Totals{
		TotalIncome:  p.TotalIncome,
		TotalExpense: p.TotalExpense,
		DebitExpense: p.DebitExpense,
	}, p.CreditUsed)
}

// CreditUsedInCycle sums the credit expenses stamped with the given billing cycle.
func CreditUsedInCycle(transactions []*entity.Transaction, billingCycle string) decimal.Decimal {
	used := decimal.Zero
	for _, t := range transactions {
		if t.IsCreditExpense() && t.BillingCycle == billingCycle {
			used = used.Add(t.Amount)
		}
	}
	return used
}
