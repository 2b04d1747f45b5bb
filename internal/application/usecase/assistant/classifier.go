// Package assistant contains the conversational assistant use cases.
package assistant

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

var (
	scheduleVerbPattern = regexp.MustCompile(`\b(agend\w*|lembr\w*|program\w*)\b`)
	dayPattern          = regexp.MustCompile(`\bdia\s+(\d{1,2})\b`)
	dueWordPattern      = regexp.MustCompile(`\b(pagar|vence|vencimento|todo mes|todos os meses|mensal\w*)\b`)
	questionPattern     = regexp.MustCompile(`^(quanto|quantos|quantas|qual|quais|como|onde|quando|tenho)\b`)
	transactionPattern  = regexp.MustCompile(`\b(gastei|paguei|comprei|recebi|ganhei|transferi|depositei|investi|torrei|gasto de|despesa de|receita de)\b`)
	queryPattern        = regexp.MustCompile(`\b(saldo|resumo|extrato|limite|fatura|credito|gastos|transacoes|movimentacoes|agendamentos|contas a pagar|balanco)\b`)
)

// fold lowercases text and strips accents so "Agendar Março" matches "agendar marco".
func fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Classify is the keyword pre-filter applied to every assistant message.
// Schedule commands win over everything else; explicit questions win over
// transaction verbs ("quanto gastei hoje?").
func Classify(text string) entity.IntentClass {
	folded := fold(text)
	if folded == "" {
		return entity.IntentClassUnknown
	}

	if scheduleVerbPattern.MatchString(folded) {
		return entity.IntentClassSchedule
	}
	if dayPattern.MatchString(folded) && dueWordPattern.MatchString(folded) {
		return entity.IntentClassSchedule
	}

	if questionPattern.MatchString(folded) || strings.HasSuffix(folded, "?") {
		return entity.IntentClassQuery
	}

	if transactionPattern.MatchString(folded) {
		return entity.IntentClassTransaction
	}

	if queryPattern.MatchString(folded) {
		return entity.IntentClassQuery
	}

	return entity.IntentClassUnknown
}
