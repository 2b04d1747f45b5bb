package assistant

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

var (
	amountToken   = regexp.MustCompile(`\d[\d.,]*`)
	amountPattern = regexp.MustCompile(`^(?:\d{1,3}(?:\.\d{3})+(?:,\d{1,2})?|\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:[.,]\d{1,2})?)$`)
	dotGroups     = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	commaGroups   = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
)

// ParseAmount reads the first money amount in text. It accepts pt-BR and
// en-US separators ("1.234,56", "1,234.56", "1234.56", "50,5", "R$ 50")
// and rejects text without a positive amount.
func ParseAmount(text string) (decimal.Decimal, error) {
	loc := amountToken.FindStringIndex(text)
	if loc == nil {
		return decimal.Zero, invalidAmount("no amount found")
	}

	// Trailing punctuation ends the sentence, not the number.
	raw := strings.TrimRight(text[loc[0]:loc[1]], ".,")
	if !amountPattern.MatchString(raw) {
		return decimal.Zero, invalidAmount("malformed amount")
	}

	if loc[0] > 0 && strings.HasSuffix(strings.TrimRight(text[:loc[0]], " R$r"), "-") {
		return decimal.Zero, invalidAmount("amount must be positive")
	}

	amount, err := decimal.NewFromString(normalizeAmount(raw))
	if err != nil {
		return decimal.Zero, invalidAmount("malformed amount")
	}

	amount = amount.Round(2)
	if !amount.IsPositive() {
		return decimal.Zero, invalidAmount("amount must be positive")
	}
	return amount, nil
}

// normalizeAmount converts a matched amount to the "1234.56" form.
func normalizeAmount(raw string) string {
	hasDot := strings.Contains(raw, ".")
	hasComma := strings.Contains(raw, ",")

	switch {
	case hasDot && hasComma:
		if strings.LastIndex(raw, ",") > strings.LastIndex(raw, ".") {
			return strings.ReplaceAll(strings.ReplaceAll(raw, ".", ""), ",", ".")
		}
		return strings.ReplaceAll(raw, ",", "")
	case hasComma:
		if commaGroups.MatchString(raw) {
			return strings.ReplaceAll(raw, ",", "")
		}
		return strings.ReplaceAll(raw, ",", ".")
	case hasDot:
		if dotGroups.MatchString(raw) {
			return strings.ReplaceAll(raw, ".", "")
		}
	}
	return raw
}

func invalidAmount(reason string) error {
	return domainerror.NewAssistantError(
		domainerror.ErrCodeInvalidAmountText,
		reason,
		domainerror.ErrInvalidAmountText,
	)
}
