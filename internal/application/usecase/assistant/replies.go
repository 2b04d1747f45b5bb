package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/finance-tracker/assistant/internal/domain/entity"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

var categoryLabels = map[entity.Category]string{
	entity.CategoryFood:          "Alimentação",
	entity.CategoryTransport:     "Transporte",
	entity.CategoryEntertainment: "Lazer",
	entity.CategoryShopping:      "Compras",
	entity.CategoryHealth:        "Saúde",
	entity.CategoryEducation:     "Educação",
	entity.CategoryBills:         "Contas",
	entity.CategoryOther:         "Outros",
	entity.CategorySalary:        "Salário",
	entity.CategoryFreelance:     "Freelance",
	entity.CategoryInvestment:    "Investimentos",
	entity.CategoryGift:          "Presente",
}

// FormatMoney renders an amount in Brazilian reais, e.g. "R$ 1.234,56".
func FormatMoney(amount decimal.Decimal) string {
	return printer.Sprintf("R$ %.2f", amount.Round(2).InexactFloat64())
}

func categoryLabel(c entity.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func pendingReply(p *entity.PendingTransaction) string {
	kind := "despesa"
	if p.Type == entity.TransactionTypeIncome {
		kind = "receita"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Confirma a %s de %s em %s", kind, FormatMoney(p.Amount), categoryLabel(p.Category))
	if p.Description != "" {
		fmt.Fprintf(&b, " (%s)", p.Description)
	}
	if p.Type == entity.TransactionTypeExpense {
		method := "débito"
		if p.PaymentMethod == entity.PaymentMethodCredit {
			method = "crédito"
		}
		fmt.Fprintf(&b, " no %s", method)
	}
	b.WriteString("?")
	return b.String()
}

func recordedReply(t *entity.Transaction, balance finance.Balance) string {
	kind := "Despesa"
	if t.Type == entity.TransactionTypeIncome {
		kind = "Receita"
	}
	return fmt.Sprintf("%s de %s registrada. Saldo atual: %s.", kind, FormatMoney(t.Amount), FormatMoney(balance.Balance))
}

func balanceReply(b finance.Balance, status finance.CreditStatus) string {
	return fmt.Sprintf(
		"Seu saldo é %s (débito: %s). Crédito usado: %s de %s, disponível %s.",
		FormatMoney(b.Balance),
		FormatMoney(b.DebitBalance),
		FormatMoney(status.Used),
		FormatMoney(status.Limit),
		FormatMoney(status.Available),
	)
}

func summaryReply(s finance.MonthlySummary) string {
	return fmt.Sprintf(
		"Saldo atual %s, a receber %s, pagamentos pendentes %s. Saldo projetado para o fim do mês: %s.",
		FormatMoney(s.CurrentBalance),
		FormatMoney(s.PendingIncome),
		FormatMoney(s.TotalPayments),
		FormatMoney(s.ProjectedBalance),
	)
}

func dayTransactionsReply(day time.Time, transactions []*entity.Transaction) string {
	if len(transactions) == 0 {
		return fmt.Sprintf("Nenhuma transação em %s.", formatDate(day))
	}

	totals := finance.SumTransactions(transactions)
	var b strings.Builder
	fmt.Fprintf(&b, "Transações em %s:", formatDate(day))
	for _, t := range transactions {
		sign := "-"
		if t.Type == entity.TransactionTypeIncome {
			sign = "+"
		}
		fmt.Fprintf(&b, "\n%s %s %s", sign, FormatMoney(t.Amount), categoryLabel(t.Category))
		if t.Description != "" {
			fmt.Fprintf(&b, " (%s)", t.Description)
		}
	}
	fmt.Fprintf(&b, "\nEntradas: %s. Saídas: %s.", FormatMoney(totals.TotalIncome), FormatMoney(totals.TotalExpense))
	return b.String()
}

func scheduledPaymentsReply(projections []finance.PaymentProjection) string {
	if len(projections) == 0 {
		return "Você não tem pagamentos agendados."
	}

	statusLabels := map[finance.PaymentStatus]string{
		finance.PaymentStatusPending: "pendente",
		finance.PaymentStatusOverdue: "atrasado",
		finance.PaymentStatusPaid:    "pago",
		finance.PaymentStatusNotDue:  "fora deste mês",
	}

	var b strings.Builder
	b.WriteString("Pagamentos agendados:")
	for _, p := range projections {
		fmt.Fprintf(&b, "\n%s: %s, dia %d (%s)",
			p.Payment.Name, FormatMoney(p.Payment.Amount), p.Payment.DueDay, statusLabels[p.Status])
	}
	return b.String()
}

func scheduledReply(p *entity.ScheduledPayment) string {
	if p.IsRecurring {
		return fmt.Sprintf("Pagamento agendado: %s de %s todo dia %d.", p.Name, FormatMoney(p.Amount), p.DueDay)
	}
	return fmt.Sprintf("Pagamento agendado: %s de %s no dia %d de %s.",
		p.Name, FormatMoney(p.Amount), p.DueDay, monthName(p.SpecificMonth.Month()))
}

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func monthName(m time.Month) string {
	return monthNames[m-1]
}
