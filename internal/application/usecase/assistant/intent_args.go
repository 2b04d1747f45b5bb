package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

// pendingFromArgs builds a pending transaction from record_transaction arguments.
// Unknown categories fall back to "other" and a missing type means expense.
func pendingFromArgs(args map[string]any, now time.Time) (*entity.PendingTransaction, error) {
	amount, err := decimalArg(args["amount"])
	if err != nil {
		return nil, err
	}

	txType := entity.TransactionType(strings.ToLower(stringArg(args["type"])))
	if !txType.IsValid() {
		txType = entity.TransactionTypeExpense
	}

	method := entity.PaymentMethod(strings.ToLower(stringArg(args["payment_method"])))
	if txType == entity.TransactionTypeIncome || !method.IsValid() {
		method = entity.PaymentMethodDebit
	}

	category, ok := entity.ParseCategory(stringArg(args["category"]))
	if !ok || !category.IsValidFor(txType) {
		category = entity.CategoryOther
	}

	return &entity.PendingTransaction{
		ID:            uuid.New(),
		Amount:        amount,
		Type:          txType,
		PaymentMethod: method,
		Category:      category,
		Description:   strings.TrimSpace(stringArg(args["description"])),
		CreatedAt:     now.UTC(),
	}, nil
}

// dayFromArgs reads an optional YYYY-MM-DD "date" argument, defaulting to today.
func dayFromArgs(args map[string]any, today time.Time) time.Time {
	raw := stringArg(args["date"])
	if raw == "" {
		return today
	}
	day, err := time.ParseInLocation(entity.BillingCycleLayout, raw, today.Location())
	if err != nil {
		return today
	}
	return day
}

func decimalArg(v any) (decimal.Decimal, error) {
	var amount decimal.Decimal
	switch value := v.(type) {
	case float64:
		amount = decimal.NewFromFloat(value)
	case int:
		amount = decimal.NewFromInt(int64(value))
	case json.Number:
		d, err := decimal.NewFromString(value.String())
		if err != nil {
			return decimal.Zero, invalidAmount("malformed amount")
		}
		amount = d
	case string:
		return ParseAmount(value)
	default:
		return decimal.Zero, invalidAmount("no amount found")
	}

	amount = amount.Round(2)
	if !amount.IsPositive() {
		return decimal.Zero, invalidAmount("amount must be positive")
	}
	return amount, nil
}

func stringArg(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case nil:
		return ""
	default:
		return fmt.Sprint(value)
	}
}

// userMessages maps validation sentinels to replies shown in the chat.
var userMessages = []struct {
	err     error
	message string
}{
	{domainerror.ErrInvalidAmountText, "Não encontrei um valor válido na mensagem."},
	{domainerror.ErrMissingScheduleDay, "Informe o dia do vencimento, por exemplo \"dia 10\"."},
	{domainerror.ErrInvalidDueDay, "O dia do vencimento deve estar entre 1 e 31."},
	{domainerror.ErrInvalidPaymentAmount, "O valor deve ser maior que zero."},
	{domainerror.ErrInvalidTransactionAmount, "O valor deve ser maior que zero."},
	{domainerror.ErrMissingPaymentName, "Informe o nome do pagamento."},
	{domainerror.ErrInvalidCategory, "Categoria inválida para este lançamento."},
	{domainerror.ErrInsufficientCredit, "Limite de crédito insuficiente para esta compra."},
}

// userMessage returns the chat reply for a validation error.
func userMessage(err error) (string, bool) {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.message, true
		}
	}
	return "", false
}
