package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

// CreditStatus is a snapshot of a profile's revolving credit.
type CreditStatus struct {
	Limit        decimal.Decimal
	Used         decimal.Decimal
	Available    decimal.Decimal
	Utilization  decimal.Decimal // Used / Limit, zero when there is no limit
	NextDueDate  time.Time
	DaysUntilDue int
	BillingCycle string
}

// NextDueDate returns the next credit due date on or after today.
func NextDueDate(today time.Time, dueDay int) time.Time {
	return NextOccurrence(today, dueDay)
}

// DaysUntilDue returns the number of days until the next credit due date.
func DaysUntilDue(today time.Time, dueDay int) int {
	return DaysUntil(today, dueDay)
}

// CycleMarker returns the most recently elapsed due date, which identifies the
// credit cycle open today. The due day itself already belongs to the new cycle.
func CycleMarker(today time.Time, dueDay int) time.Time {
	return MostRecentOccurrence(today, dueDay)
}

// CycleResetDecision tells whether a stored marker is behind the current cycle.
// A nil marker is initialized without resetting, so a profile never loses credit
// usage recorded before the marker existed.
func CycleResetDecision(lastReset *time.Time, today time.Time, dueDay int) (marker time.Time, reset bool) {
	marker = CycleMarker(today, dueDay)
	if lastReset == nil {
		return marker, false
	}
	return marker, marker.After(CivilDate(*lastReset))
}

// ApplyCycleReset moves the profile into the current cycle. It zeroes CreditUsed
// only when a due date elapsed since the stored marker and reports whether the
// profile changed. Applying it twice within a cycle is a no-op the second time.
func ApplyCycleReset(p *entity.Profile, today time.Time) (changed bool, reset bool) {
	marker, reset := CycleResetDecision(p.LastCreditResetAt, today, p.CreditDueDay)

	if p.LastCreditResetAt != nil && !reset {
		return false, false
	}

	if reset {
		p.CreditUsed = decimal.Zero
	}
	p.LastCreditResetAt = &marker
	p.UpdatedAt = time.Now().UTC()
	return true, reset
}

// CheckCreditAvailable rejects a credit expense that would push usage past the limit.
func CheckCreditAvailable(limit, used, amount decimal.Decimal) error {
	available := limit.Sub(used)
	if amount.GreaterThan(available) {
		return domainerror.ErrInsufficientCredit
	}
	return nil
}

// CreditStatusFor builds the credit snapshot of a profile as of today.
func CreditStatusFor(p *entity.Profile, today time.Time) CreditStatus {
	utilization := decimal.Zero
	if p.CreditLimit.IsPositive() {
		utilization = p.CreditUsed.Div(p.CreditLimit).Round(4)
	}

	return CreditStatus{
		Limit:        p.CreditLimit,
		Used:         p.CreditUsed,
		Available:    p.AvailableCredit(),
		Utilization:  utilization,
		NextDueDate:  NextDueDate(today, p.CreditDueDay),
		DaysUntilDue: DaysUntilDue(today, p.CreditDueDay),
		BillingCycle: p.BillingCycle(),
	}
}
