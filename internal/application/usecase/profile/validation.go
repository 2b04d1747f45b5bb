// Package profile contains profile use cases.
package profile

import (
	"regexp"

	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IncomeFields is the optional recurring-income schedule of a profile.
type IncomeFields struct {
	SalaryAmount  *decimal.Decimal
	SalaryDay     *int
	AdvanceAmount *decimal.Decimal
	AdvanceDay    *int
}

// ValidateEmail checks an optional email address.
func ValidateEmail(email *string) error {
	if email == nil || *email == "" {
		return nil
	}
	if !emailRegex.MatchString(*email) {
		return domainerror.NewProfileError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}
	return nil
}

// ValidateCreditLine checks the credit limit and due day.
func ValidateCreditLine(limit decimal.Decimal, dueDay int) error {
	if limit.IsNegative() {
		return domainerror.NewCreditError(
			domainerror.ErrCodeInvalidCreditLimit,
			"credit limit must not be negative",
			domainerror.ErrInvalidCreditLimit,
		)
	}
	if !validDay(dueDay) {
		return domainerror.NewCreditError(
			domainerror.ErrCodeInvalidDueDay,
			"credit due day must be between 1 and 31",
			domainerror.ErrInvalidDueDay,
		)
	}
	return nil
}

// ValidateIncome checks the salary and advance schedule.
func ValidateIncome(income IncomeFields) error {
	for _, amount := range []*decimal.Decimal{income.SalaryAmount, income.AdvanceAmount} {
		if amount != nil && amount.IsNegative() {
			return domainerror.NewProfileError(
				domainerror.ErrCodeInvalidProfileAmount,
				"income amounts must not be negative",
				domainerror.ErrInvalidAmount,
			)
		}
	}
	for _, day := range []*int{income.SalaryDay, income.AdvanceDay} {
		if day != nil && !validDay(*day) {
			return domainerror.NewProfileError(
				domainerror.ErrCodeInvalidProfileDay,
				"pay days must be between 1 and 31",
				domainerror.ErrInvalidDueDay,
			)
		}
	}
	return nil
}

func validDay(day int) bool {
	return day >= 1 && day <= 31
}
