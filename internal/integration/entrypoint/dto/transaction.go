package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/usecase/transaction"
	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// RecordTransactionRequest represents the request body for recording a transaction.
type RecordTransactionRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type" binding:"required,oneof=income expense"`
	PaymentMethod string          `json:"payment_method,omitempty" binding:"omitempty,oneof=debit credit"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	Date          *string         `json:"date,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID            uint      `json:"id"`
	UserID        string    `json:"user_id"`
	Amount        string    `json:"amount"`
	Type          string    `json:"type"`
	PaymentMethod string    `json:"payment_method"`
	Category      string    `json:"category"`
	Description   string    `json:"description,omitempty"`
	Date          time.Time `json:"date"`
	BillingCycle  string    `json:"billing_cycle,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RecordTransactionResponse represents a recorded transaction with the updated balances.
type RecordTransactionResponse struct {
	Transaction TransactionResponse  `json:"transaction"`
	Balance     BalanceResponse      `json:"balance"`
	Credit      CreditStatusResponse `json:"credit"`
}

// TransactionListResponse represents a list of transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
}

// DayTransactionsResponse represents the transactions of one day with totals.
type DayTransactionsResponse struct {
	Date         string                `json:"date"`
	Transactions []TransactionResponse `json:"transactions"`
	TotalIncome  string                `json:"total_income"`
	TotalExpense string                `json:"total_expense"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	method := t.PaymentMethod
	if t.Type == entity.TransactionTypeExpense && method == "" {
		method = entity.PaymentMethodDebit
	}

	return TransactionResponse{
		ID:            t.ID,
		UserID:        t.UserID,
		Amount:        Money(t.Amount),
		Type:          string(t.Type),
		PaymentMethod: string(method),
		Category:      string(t.Category),
		Description:   t.Description,
		Date:          t.Date,
		BillingCycle:  t.BillingCycle,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(transactions []*entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, ToTransactionResponse(t))
	}
	return responses
}

// ToRecordTransactionResponse converts the record use case output.
func ToRecordTransactionResponse(output *transaction.RecordTransactionOutput) RecordTransactionResponse {
	return RecordTransactionResponse{
		Transaction: ToTransactionResponse(output.Transaction),
		Balance:     ToBalanceResponse(output.Balance),
		Credit:      ToCreditStatusResponse(output.Credit),
	}
}

// ToDayTransactionsResponse converts the day listing use case output.
func ToDayTransactionsResponse(output *transaction.GetDayTransactionsOutput) DayTransactionsResponse {
	return DayTransactionsResponse{
		Date:         formatDate(output.Date),
		Transactions: ToTransactionResponses(output.Transactions),
		TotalIncome:  Money(output.Totals.TotalIncome),
		TotalExpense: Money(output.Totals.TotalExpense),
	}
}
