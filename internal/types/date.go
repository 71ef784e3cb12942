package types

import (
	"time"
)

// Billing cycle boundaries are calendar-day arithmetic: months have
// different lengths and a day-of-month may not exist in every month, so all
// helpers here clamp to the last valid day instead of letting time.AddDate
// normalize across month boundaries (Jan 31 + 1 month must be Feb 28/29,
// never Mar 2/3).

// AddClampedDate adds years, months and days to t, clamping the resulting
// day-of-month to the last valid day of the target month. Time of day and
// location are preserved.
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	newY := y + years
	newM := time.Month(int(m) + months)

	// Moving beyond December or before January adjusts the year,
	// for example adding 2 months to November lands on January next year.
	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	newD := d + days
	if last := LastDayOfMonth(newY, newM); newD > last {
		newD = last
	}

	return time.Date(newY, newM, newD, h, min, sec, t.Nanosecond(), t.Location())
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDayToMonth returns day, or the month's last day when the month is
// shorter (ex day 31 in February yields 28 or 29).
func ClampDayToMonth(year int, month time.Month, day int) int {
	if last := LastDayOfMonth(year, month); day > last {
		return last
	}
	return day
}

// CivilDate strips the time-of-day and location from t, returning midnight
// UTC of the same calendar date. Boundary and day-count arithmetic operates
// on civil dates; event ordering keeps the original UTC instants.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from 'from' to 'to',
// ignoring time-of-day. Negative when 'to' is before 'from'.
func DaysBetween(from, to time.Time) int {
	a := CivilDate(from)
	b := CivilDate(to)
	return int(b.Sub(a).Hours() / 24)
}
