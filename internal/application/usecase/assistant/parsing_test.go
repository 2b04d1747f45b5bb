package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want entity.IntentClass
	}{
		{"Agendar aluguel 1500 dia 5", entity.IntentClassSchedule},
		{"Lembre-me de pagar a luz dia 10", entity.IntentClassSchedule},
		{"internet vence dia 15, 100 reais", entity.IntentClassSchedule},
		{"quanto gastei hoje?", entity.IntentClassQuery},
		{"Qual é o meu saldo", entity.IntentClassQuery},
		{"me mostra o extrato", entity.IntentClassQuery},
		{"gastei 50 no mercado", entity.IntentClassTransaction},
		{"Recebi 3.000 de salário", entity.IntentClassTransaction},
		{"comprei pão dia 5", entity.IntentClassTransaction},
		{"oi", entity.IntentClassUnknown},
		{"   ", entity.IntentClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		text    string
		want    string
		wantErr bool
	}{
		{text: "50", want: "50.00"},
		{text: "R$ 1.234,56", want: "1234.56"},
		{text: "1,234.56", want: "1234.56"},
		{text: "1234.56", want: "1234.56"},
		{text: "gastei 50,5 no mercado", want: "50.50"},
		{text: "12.5 reais", want: "12.50"},
		{text: "1.000", want: "1000.00"},
		{text: "19,999", want: "19999.00"},
		{text: "paguei 35,90.", want: "35.90"},
		{text: "12.3456", wantErr: true},
		{text: "1.234,567", wantErr: true},
		{text: "1,2345", wantErr: true},
		{text: "sem valor", wantErr: true},
		{text: "0", wantErr: true},
		{text: "-50", wantErr: true},
		{text: "R$ -50", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseAmount(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainerror.ErrInvalidAmountText)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestParseScheduleCommand(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("recurring", func(t *testing.T) {
		cmd, err := ParseScheduleCommand("Agendar aluguel 1500 dia 5", today)
		require.NoError(t, err)
		assert.Equal(t, "Aluguel", cmd.Name)
		assert.Equal(t, "1500.00", cmd.Amount.StringFixed(2))
		assert.Equal(t, 5, cmd.DueDay)
		assert.True(t, cmd.IsRecurring)
		assert.Nil(t, cmd.SpecificMonth)
		assert.Equal(t, entity.CategoryBills, cmd.Category)
	})

	t.Run("amount that looks like a year", func(t *testing.T) {
		cmd, err := ParseScheduleCommand("agendar aluguel 2024 dia 5", today)
		require.NoError(t, err)
		assert.Equal(t, "2024.00", cmd.Amount.StringFixed(2))
		assert.True(t, cmd.IsRecurring)
	})

	t.Run("past month rolls to next year", func(t *testing.T) {
		cmd, err := ParseScheduleCommand("Agendar IPVA 1.200,50 dia 20 de janeiro", today)
		require.NoError(t, err)
		assert.Equal(t, "IPVA", cmd.Name)
		assert.Equal(t, "1200.50", cmd.Amount.StringFixed(2))
		assert.False(t, cmd.IsRecurring)
		require.NotNil(t, cmd.SpecificMonth)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *cmd.SpecificMonth)
	})

	t.Run("explicit year and category alias", func(t *testing.T) {
		cmd, err := ParseScheduleCommand("lembrar farmácia 80 dia 12 março 2024", today)
		require.NoError(t, err)
		assert.Equal(t, "Farmácia", cmd.Name)
		assert.Equal(t, "80.00", cmd.Amount.StringFixed(2))
		assert.Equal(t, entity.CategoryHealth, cmd.Category)
		require.NotNil(t, cmd.SpecificMonth)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *cmd.SpecificMonth)
	})

	t.Run("missing day", func(t *testing.T) {
		_, err := ParseScheduleCommand("agendar aluguel 1500", today)
		assert.ErrorIs(t, err, domainerror.ErrMissingScheduleDay)
	})

	t.Run("day out of range", func(t *testing.T) {
		_, err := ParseScheduleCommand("agendar aluguel 1500 dia 32", today)
		assert.ErrorIs(t, err, domainerror.ErrInvalidDueDay)
	})

	t.Run("missing amount", func(t *testing.T) {
		_, err := ParseScheduleCommand("agendar aluguel dia 5", today)
		assert.ErrorIs(t, err, domainerror.ErrInvalidAmountText)
	})
}

func TestClassifyParserError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ReplyErrorKind
	}{
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), ReplyErrorTimeout},
		{"status 429", &adapter.ParserStatusError{StatusCode: 429, Message: "slow down"}, ReplyErrorRateLimited},
		{"status 402", &adapter.ParserStatusError{StatusCode: 402, Message: "pay up"}, ReplyErrorQuotaExceeded},
		{"quota text", errors.New("Quota exceeded for project"), ReplyErrorQuotaExceeded},
		{"resource exhausted", errors.New("rpc error: Resource Exhausted"), ReplyErrorRateLimited},
		{"timeout text", errors.New("i/o timeout"), ReplyErrorTimeout},
		{"status 500", &adapter.ParserStatusError{StatusCode: 500, Message: "boom"}, ReplyErrorFailed},
		{"other", errors.New("connection refused"), ReplyErrorFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyParserError(tt.err)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, replyMessages[tt.want], got.Message)
		})
	}
}

func TestPendingFromArgs(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("json number with defaults", func(t *testing.T) {
		p, err := pendingFromArgs(map[string]any{"amount": json.Number("25.5")}, now)
		require.NoError(t, err)
		assert.Equal(t, "25.50", p.Amount.StringFixed(2))
		assert.Equal(t, entity.TransactionTypeExpense, p.Type)
		assert.Equal(t, entity.PaymentMethodDebit, p.PaymentMethod)
		assert.Equal(t, entity.CategoryOther, p.Category)
	})

	t.Run("income forces debit", func(t *testing.T) {
		p, err := pendingFromArgs(map[string]any{
			"amount":         float64(3000),
			"type":           "INCOME",
			"payment_method": "credit",
			"category":       "salario",
			"description":    "  salário de março ",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, entity.TransactionTypeIncome, p.Type)
		assert.Equal(t, entity.PaymentMethodDebit, p.PaymentMethod)
		assert.Equal(t, entity.CategorySalary, p.Category)
		assert.Equal(t, "salário de março", p.Description)
	})

	t.Run("category not valid for type", func(t *testing.T) {
		p, err := pendingFromArgs(map[string]any{"amount": "R$ 40", "category": "salary"}, now)
		require.NoError(t, err)
		assert.Equal(t, entity.CategoryOther, p.Category)
	})

	t.Run("missing amount", func(t *testing.T) {
		_, err := pendingFromArgs(map[string]any{"type": "expense"}, now)
		assert.ErrorIs(t, err, domainerror.ErrInvalidAmountText)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := pendingFromArgs(map[string]any{"amount": float64(-5)}, now)
		assert.ErrorIs(t, err, domainerror.ErrInvalidAmountText)
	})
}

func TestDayFromArgs(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, today, dayFromArgs(nil, today))
	assert.Equal(t, today, dayFromArgs(map[string]any{"date": "15/03/2024"}, today))
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), dayFromArgs(map[string]any{"date": "2024-03-02"}, today))
}
