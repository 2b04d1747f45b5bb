// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile represents a registered user together with their debit seed, revolving
// credit line and recurring-income schedule.
type Profile struct {
	ID             uint
	UserID         string
	FullName       string
	Email          *string
	Phone          *string
	InitialBalance decimal.Decimal
	CreditLimit    decimal.Decimal
	CreditUsed     decimal.Decimal
	CreditDueDay   int
	SalaryAmount   *decimal.Decimal
	SalaryDay      *int
	AdvanceAmount  *decimal.Decimal
	AdvanceDay     *int

	// Running totals maintained on every insert.
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	DebitExpense decimal.Decimal

	// LastCreditResetAt is the due date whose cycle reset has already been applied.
	LastCreditResetAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProfile creates a new Profile with zeroed counters.
func NewProfile(
	userID string,
	fullName string,
	initialBalance decimal.Decimal,
	creditLimit decimal.Decimal,
	creditDueDay int,
) *Profile {
	now := time.Now().UTC()
	return &Profile{
		UserID:         userID,
		FullName:       fullName,
		InitialBalance: initialBalance,
		CreditLimit:    creditLimit,
		CreditUsed:     decimal.Zero,
		CreditDueDay:   creditDueDay,
		TotalIncome:    decimal.Zero,
		TotalExpense:   decimal.Zero,
		DebitExpense:   decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// AvailableCredit returns the unused part of the credit limit, never negative.
func (p *Profile) AvailableCredit() decimal.Decimal {
	available := p.CreditLimit.Sub(p.CreditUsed)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// BillingCycle returns the identifier of the credit cycle currently open on the profile.
func (p *Profile) BillingCycle() string {
	if p.LastCreditResetAt == nil {
		return ""
	}
	return p.LastCreditResetAt.Format(BillingCycleLayout)
}

// BillingCycleLayout is the date layout used for billing cycle identifiers.
const BillingCycleLayout = "2006-01-02"

// ProfileSummary is a profile enriched with derived balances for listings.
type ProfileSummary struct {
	Profile      *Profile
	Balance      decimal.Decimal
	DebitBalance decimal.Decimal
}
