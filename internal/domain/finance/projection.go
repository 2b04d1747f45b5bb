package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// PaymentStatus describes a scheduled payment relative to the current month.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusNotDue  PaymentStatus = "not_due"
)

// IncomeSchedule is the recurring income a user expects every month.
type IncomeSchedule struct {
	SalaryAmount  *decimal.Decimal
	SalaryDay     *int
	AdvanceAmount *decimal.Decimal
	AdvanceDay    *int
}

// IncomeScheduleOf extracts the income schedule from a profile.
func IncomeScheduleOf(p *entity.Profile) IncomeSchedule {
	if p == nil {
		return IncomeSchedule{}
	}
	return IncomeSchedule{
		SalaryAmount:  p.SalaryAmount,
		SalaryDay:     p.SalaryDay,
		AdvanceAmount: p.AdvanceAmount,
		AdvanceDay:    p.AdvanceDay,
	}
}

// PaymentProjection is one scheduled payment evaluated for the current month.
type PaymentProjection struct {
	Payment      *entity.ScheduledPayment
	DueThisMonth bool
	Settled      bool
	DueDate      time.Time // Clamped occurrence in the current month
	DaysUntilDue int       // Days to the next occurrence of the due day
	Status       PaymentStatus
}

// MonthlySummary is the month-end projection.
type MonthlySummary struct {
	CurrentBalance   decimal.Decimal
	PendingIncome    decimal.Decimal
	TotalPayments    decimal.Decimal
	ProjectedBalance decimal.Decimal
	Payments         []PaymentProjection
}

// IsDueThisMonth reports whether the payment falls due in today's month.
// Recurring payments are due every month; one-time payments only in their month.
// SpecificMonth is a calendar month, so it is compared without a zone conversion.
func IsDueThisMonth(p *entity.ScheduledPayment, today time.Time) bool {
	if p.IsRecurring {
		return true
	}
	if p.SpecificMonth == nil {
		return false
	}
	return SameMonth(*p.SpecificMonth, CivilDate(today))
}

// IsSettled reports whether the payment was already satisfied for the cycle
// containing today. Recurring payments settle per month; one-time payments
// settle once and for all.
func IsSettled(p *entity.ScheduledPayment, today time.Time) bool {
	if p.LastPaidAt == nil {
		return false
	}
	if !p.IsRecurring {
		return true
	}
	return SameMonth(p.LastPaidAt.In(today.Location()), today)
}

// ProjectPayment evaluates a single scheduled payment as of today.
func ProjectPayment(p *entity.ScheduledPayment, today time.Time) PaymentProjection {
	date := CivilDate(today)
	due := IsDueThisMonth(p, today)
	settled := IsSettled(p, today)
	dueDate := OccurrenceIn(date.Year(), date.Month(), p.DueDay)

	status := PaymentStatusNotDue
	switch {
	case due && settled:
		status = PaymentStatusPaid
	case due && dueDate.Before(date):
		status = PaymentStatusOverdue
	case due:
		status = PaymentStatusPending
	}

	return PaymentProjection{
		Payment:      p,
		DueThisMonth: due,
		Settled:      settled,
		DueDate:      dueDate,
		DaysUntilDue: DaysUntil(today, p.DueDay),
		Status:       status,
	}
}

// TotalPayments sums the payments due this month that are not yet settled.
func TotalPayments(payments []*entity.ScheduledPayment, today time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if IsDueThisMonth(p, today) && !IsSettled(p, today) {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// PendingIncome sums the salary and advance credits whose pay day is still ahead
// this month. A pay day equal to today counts as already received.
func PendingIncome(schedule IncomeSchedule, today time.Time) decimal.Decimal {
	date := CivilDate(today)
	total := decimal.Zero

	add := func(amount *decimal.Decimal, day *int) {
		if amount == nil || day == nil || !amount.IsPositive() {
			return
		}
		if ClampDay(date.Year(), date.Month(), *day) > date.Day() {
			total = total.Add(*amount)
		}
	}

	add(schedule.SalaryAmount, schedule.SalaryDay)
	add(schedule.AdvanceAmount, schedule.AdvanceDay)
	return total
}

// ProjectMonth computes the month-end projection:
// current balance + pending income - unsettled payments due this month.
func ProjectMonth(
	currentBalance decimal.Decimal,
	schedule IncomeSchedule,
	payments []*entity.ScheduledPayment,
	today time.Time,
) MonthlySummary {
	projections := make([]PaymentProjection, 0, len(payments))
	for _, p := range payments {
		projections = append(projections, ProjectPayment(p, today))
	}

	totalPayments := TotalPayments(payments, today)
	pendingIncome := PendingIncome(schedule, today)

	return MonthlySummary{
		CurrentBalance:   currentBalance,
		PendingIncome:    pendingIncome,
		TotalPayments:    totalPayments,
		ProjectedBalance: currentBalance.Add(pendingIncome).Sub(totalPayments),
		Payments:         projections,
	}
}
