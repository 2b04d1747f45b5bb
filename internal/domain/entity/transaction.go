// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the type is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// PaymentMethod represents how an expense was paid.
type PaymentMethod string

const (
	PaymentMethodDebit  PaymentMethod = "debit"
	PaymentMethodCredit PaymentMethod = "credit"
)

// IsValid reports whether the payment method is one of the known methods.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodDebit || m == PaymentMethodCredit
}

// Transaction represents an immutable ledger entry.
type Transaction struct {
	ID            uint
	UserID        string
	Amount        decimal.Decimal // Always positive; Type carries the direction
	Type          TransactionType
	PaymentMethod PaymentMethod // Empty on legacy records, treated as debit
	Category      Category
	Description   string
	Date          time.Time
	BillingCycle  string // Credit cycle start (YYYY-MM-DD) for credit expenses
	CreatedAt     time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID string,
	amount decimal.Decimal,
	transactionType TransactionType,
	paymentMethod PaymentMethod,
	category Category,
	description string,
	date time.Time,
) *Transaction {
	if transactionType == TransactionTypeIncome {
		paymentMethod = PaymentMethodDebit
	}

	return &Transaction{
		UserID:        userID,
		Amount:        amount,
		Type:          transactionType,
		PaymentMethod: paymentMethod,
		Category:      category,
		Description:   description,
		Date:          date,
		CreatedAt:     time.Now().UTC(),
	}
}

// IsCreditExpense reports whether the transaction consumes revolving credit.
func (t *Transaction) IsCreditExpense() bool {
	return t.Type == TransactionTypeExpense && t.PaymentMethod == PaymentMethodCredit
}

// IsDebitExpense reports whether the transaction is an expense paid from the debit balance.
// Records without a payment method predate credit support and count as debit.
func (t *Transaction) IsDebitExpense() bool {
	return t.Type == TransactionTypeExpense &&
		(t.PaymentMethod == PaymentMethodDebit || t.PaymentMethod == "")
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*Transaction
	Total        int64
}
