// Package finance holds the pure balance, credit-cycle and schedule projection rules.
//
// Every date handled here is a calendar date: callers pass "today" in the
// user's location and receive dates normalized to midnight UTC so that day
// arithmetic never crosses a DST boundary.
package finance

import "time"

// CivilDate strips the clock from t and returns its calendar date at midnight UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay maps a day of month onto the given month, so 31 becomes the last day
// of a shorter month and values below 1 become 1.
func ClampDay(year int, month time.Month, day int) int {
	if day < 1 {
		return 1
	}
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// OccurrenceIn returns the clamped occurrence of day in the given month.
func OccurrenceIn(year int, month time.Month, day int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 0, ClampDay(first.Year(), first.Month(), day)-1)
}

// NextOccurrence returns the soonest occurrence of day on or after today.
// When the day already passed this month it rolls to next month.
func NextOccurrence(today time.Time, day int) time.Time {
	date := CivilDate(today)
	this := OccurrenceIn(date.Year(), date.Month(), day)
	if !this.Before(date) {
		return this
	}
	next := time.Date(date.Year(), date.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return OccurrenceIn(next.Year(), next.Month(), day)
}

// MostRecentOccurrence returns the latest occurrence of day on or before today.
func MostRecentOccurrence(today time.Time, day int) time.Time {
	date := CivilDate(today)
	this := OccurrenceIn(date.Year(), date.Month(), day)
	if !this.After(date) {
		return this
	}
	prev := time.Date(date.Year(), date.Month()-1, 1, 0, 0, 0, 0, time.UTC)
	return OccurrenceIn(prev.Year(), prev.Month(), day)
}

// DaysBetween returns the whole number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)).Hours() / 24)
}

// DaysUntil returns how many days remain until the next occurrence of day.
// It is 0 when day is today and at most 31 otherwise.
func DaysUntil(today time.Time, day int) int {
	return DaysBetween(today, NextOccurrence(today, day))
}

// SameMonth reports whether a and b fall in the same calendar month and year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// MonthBounds returns the first and last calendar day of the month containing t.
func MonthBounds(t time.Time) (start, end time.Time) {
	date := CivilDate(t)
	start = time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}
