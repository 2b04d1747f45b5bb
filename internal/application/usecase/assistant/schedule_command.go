package assistant

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

// ScheduleCommand is a scheduling request read from free text.
type ScheduleCommand struct {
	Name          string
	Amount        decimal.Decimal
	DueDay        int
	IsRecurring   bool
	SpecificMonth *time.Time
	Category      entity.Category
}

var months = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"marco":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

// yearPattern only reads a year written right after a month name.
var yearPattern = regexp.MustCompile(`\b(?:janeiro|fevereiro|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)(?:\s+de)?\s+(20\d{2})\b`)

// commandWords never become part of the payment name.
var commandWords = map[string]bool{
	"agendar": true, "agende": true, "agenda": true, "agendamento": true,
	"lembrar": true, "lembrete": true, "lembre": true, "programar": true, "programe": true,
	"pagar": true, "pagamento": true, "vence": true, "vencimento": true,
	"todo": true, "todos": true, "mes": true, "meses": true, "mensal": true, "mensalmente": true,
	"dia": true, "r$": true, "reais": true, "real": true, "valor": true,
}

// fillerWords are trimmed from both ends of the payment name.
var fillerWords = map[string]bool{
	"de": true, "do": true, "da": true, "dos": true, "das": true, "o": true, "a": true,
	"os": true, "as": true, "no": true, "na": true, "em": true, "para": true, "pra": true,
	"com": true, "um": true, "uma": true, "e": true, "meu": true, "minha": true,
}

// ParseScheduleCommand reads name, amount, "dia N" and an optional month from text.
// Naming a month makes the payment one-time in that month (rolling to next year
// when the month already passed); otherwise it recurs monthly.
func ParseScheduleCommand(text string, today time.Time) (*ScheduleCommand, error) {
	folded := fold(text)

	dayMatch := dayPattern.FindStringSubmatchIndex(folded)
	if dayMatch == nil {
		return nil, domainerror.NewAssistantError(
			domainerror.ErrCodeMissingScheduleDay,
			"informe o dia do vencimento, por exemplo \"dia 10\"",
			domainerror.ErrMissingScheduleDay,
		)
	}
	day, _ := strconv.Atoi(folded[dayMatch[2]:dayMatch[3]])
	if day < 1 || day > 31 {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidPaymentDueDay,
			"due day must be between 1 and 31",
			domainerror.ErrInvalidDueDay,
		)
	}

	rest := folded[:dayMatch[0]] + " " + folded[dayMatch[1]:]

	var year int
	if y := yearPattern.FindStringSubmatchIndex(rest); y != nil {
		year, _ = strconv.Atoi(rest[y[2]:y[3]])
		rest = rest[:y[2]] + " " + rest[y[3]:]
	}

	amount, err := ParseAmount(rest)
	if err != nil {
		return nil, err
	}

	cmd := &ScheduleCommand{
		Amount:      amount,
		DueDay:      day,
		IsRecurring: true,
		Category:    entity.CategoryBills,
	}

	var nameWords []string
	categoryFound := false
	for _, word := range strings.Fields(text) {
		key := fold(strings.TrimFunc(word, unicode.IsPunct))
		if m, ok := months[key]; ok {
			month := resolveMonth(m, year, today)
			cmd.IsRecurring = false
			cmd.SpecificMonth = &month
			continue
		}
		if commandWords[key] || key == "" || strings.ContainsAny(key, "0123456789") {
			continue
		}
		if c, ok := entity.ParseCategory(key); ok && !categoryFound && c.IsValidFor(entity.TransactionTypeExpense) {
			cmd.Category = c
			categoryFound = true
		}
		nameWords = append(nameWords, strings.TrimFunc(word, unicode.IsPunct))
	}

	cmd.Name = buildName(nameWords)
	return cmd, nil
}

// resolveMonth picks the next occurrence of month, honoring an explicit year.
func resolveMonth(month time.Month, year int, today time.Time) time.Time {
	if year == 0 {
		year = today.Year()
		if month < today.Month() {
			year++
		}
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func buildName(words []string) string {
	for len(words) > 0 && fillerWords[fold(words[0])] {
		words = words[1:]
	}
	for len(words) > 0 && fillerWords[fold(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return "Pagamento agendado"
	}

	name := strings.Join(words, " ")
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
