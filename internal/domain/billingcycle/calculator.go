// Package billingcycle computes billing cycle boundary dates for a
// (bill cycle day, billing period) pair.
package billingcycle

import (
	"time"

	ierr "github.com/flexprice/billcycle/internal/errors"
	"github.com/flexprice/billcycle/internal/types"
)

// validateInputs rejects out-of-range bill cycle days and non-recurring
// billing periods before any date arithmetic happens.
func validateInputs(bcd int, period types.BillingPeriod) error {
	if bcd < 1 || bcd > 31 {
		return ierr.NewError("invalid bill cycle day").
			WithHintf("Bill cycle day must be between 1 and 31, got %d", bcd).
			Mark(ierr.ErrValidation)
	}
	if err := period.Validate(); err != nil {
		return err
	}
	if !period.IsRecurring() {
		return ierr.NewError("unsupported billing period").
			WithHintf("Billing period %s has no recurring cycle", period).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// boundaryInMonth places the cycle boundary inside date's month: day-of-month
// is the bill cycle day clamped to the month's length, time-of-day is kept.
func boundaryInMonth(date time.Time, bcd int) time.Time {
	y, m, _ := date.Date()
	h, min, sec := date.Clock()
	d := types.ClampDayToMonth(y, m, bcd)
	return time.Date(y, m, d, h, min, sec, date.Nanosecond(), date.Location())
}

// stepBoundary moves a boundary by the given number of months, re-applying
// the bill cycle day in the target month. Stepping from Feb 28 with bcd=31
// therefore lands on Mar 31, not Mar 28.
func stepBoundary(boundary time.Time, bcd int, months int) time.Time {
	return boundaryInMonth(types.AddClampedDate(boundary, 0, months, 0), bcd)
}

// PreviousBillingCycleDate returns the latest cycle boundary on or before
// the given date.
func PreviousBillingCycleDate(date time.Time, bcd int, period types.BillingPeriod) (time.Time, error) {
	if err := validateInputs(bcd, period); err != nil {
		return time.Time{}, err
	}
	candidate := boundaryInMonth(date, bcd)
	for candidate.After(date) {
		candidate = stepBoundary(candidate, bcd, -period.Months())
	}
	return candidate, nil
}

// NextBillingCycleDate returns the earliest cycle boundary strictly after
// the given date.
func NextBillingCycleDate(date time.Time, bcd int, period types.BillingPeriod) (time.Time, error) {
	prev, err := PreviousBillingCycleDate(date, bcd, period)
	if err != nil {
		return time.Time{}, err
	}
	return stepBoundary(prev, bcd, period.Months()), nil
}

// BoundaryOnOrAfter returns the earliest cycle boundary on or after the
// given date. A date already sitting on its bill cycle day is its own
// boundary.
func BoundaryOnOrAfter(date time.Time, bcd int, period types.BillingPeriod) (time.Time, error) {
	if err := validateInputs(bcd, period); err != nil {
		return time.Time{}, err
	}
	candidate := boundaryInMonth(date, bcd)
	for candidate.Before(date) {
		candidate = stepBoundary(candidate, bcd, period.Months())
	}
	return candidate, nil
}
