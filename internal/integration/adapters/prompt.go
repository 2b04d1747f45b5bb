package adapters

import (
	"fmt"
	"strings"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

const promptDateLayout = "2006-01-02"

// buildSystemPrompt renders the user's financial context as parser instructions.
func buildSystemPrompt(fc entity.FinancialContext) string {
	var sb strings.Builder

	sb.WriteString(`Voce e um assistente financeiro pessoal. Responda sempre em Portugues Brasileiro.

Sua tarefa e interpretar a mensagem do usuario e chamar UMA das funcoes disponiveis:
- record_transaction: o usuario gastou ou recebeu dinheiro
- get_current_balance: o usuario quer saber o saldo
- get_financial_summary: o usuario quer um resumo do mes
- get_day_transactions: o usuario quer ver os lancamentos de um dia
- get_scheduled_payments: o usuario quer ver as contas agendadas

REGRAS:
- Valores sempre positivos, em reais, com ponto decimal
- "credito", "cartao" ou "parcelado" indicam payment_method "credit"; caso contrario use "debit"
- Categorias de despesa: food, transport, entertainment, shopping, health, education, bills, other
- Categorias de receita: salary, freelance, investment, gift, other
- Datas no formato AAAA-MM-DD
- Se nenhuma funcao servir, responda apenas com texto curto

CONTEXTO FINANCEIRO:
`)

	fmt.Fprintf(&sb, "- Hoje: %s\n", fc.Today.Format(promptDateLayout))
	fmt.Fprintf(&sb, "- Saldo: %s\n", fc.Balance.StringFixed(2))
	fmt.Fprintf(&sb, "- Saldo em debito: %s\n", fc.DebitBalance.StringFixed(2))
	fmt.Fprintf(&sb, "- Limite de credito: %s (usado %s, disponivel %s, vencimento dia %d)\n",
		fc.CreditLimit.StringFixed(2), fc.CreditUsed.StringFixed(2), fc.AvailableCredit.StringFixed(2), fc.CreditDueDay)
	if fc.SalaryAmount != nil && fc.SalaryDay != nil {
		fmt.Fprintf(&sb, "- Salario: %s no dia %d\n", fc.SalaryAmount.StringFixed(2), *fc.SalaryDay)
	}
	if fc.AdvanceAmount != nil && fc.AdvanceDay != nil {
		fmt.Fprintf(&sb, "- Adiantamento: %s no dia %d\n", fc.AdvanceAmount.StringFixed(2), *fc.AdvanceDay)
	}

	sb.WriteString("\nULTIMOS LANCAMENTOS:\n")
	if len(fc.RecentTransactions) == 0 {
		sb.WriteString("(Nenhum lancamento)\n")
	}
	for _, tx := range fc.RecentTransactions {
		fmt.Fprintf(&sb, "- %s %s %s %s (%s) %q\n",
			tx.Date.Format(promptDateLayout), tx.Type, tx.Amount.StringFixed(2), tx.Category, paymentMethodOf(tx), tx.Description)
	}

	sb.WriteString("\nCONTAS AGENDADAS:\n")
	if len(fc.ScheduledPayments) == 0 {
		sb.WriteString("(Nenhuma conta agendada)\n")
	}
	for _, p := range fc.ScheduledPayments {
		kind := "mensal"
		if !p.IsRecurring && p.SpecificMonth != nil {
			kind = p.SpecificMonth.Format("2006-01")
		}
		fmt.Fprintf(&sb, "- %s: %s no dia %d (%s)\n", p.Name, p.Amount.StringFixed(2), p.DueDay, kind)
	}

	return sb.String()
}

func paymentMethodOf(tx *entity.Transaction) entity.PaymentMethod {
	if tx.PaymentMethod == "" {
		return entity.PaymentMethodDebit
	}
	return tx.PaymentMethod
}
