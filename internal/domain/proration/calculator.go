package proration

import (
	"context"
	"time"

	"github.com/flexprice/billcycle/internal/domain/billingcycle"
	ierr "github.com/flexprice/billcycle/internal/errors"
	"github.com/flexprice/billcycle/internal/types"
	"github.com/shopspring/decimal"
)

// CalculatorType defines the type of proration calculation to use
type CalculatorType string

const (
	CalculatorTypeDay CalculatorType = "day"
)

// NewCalculator creates a proration calculator of the specified type.
func NewCalculator(calculatorType CalculatorType) Calculator {
	switch calculatorType {
	default:
		return &dayBasedCalculator{}
	}
}

// dayBasedCalculator implements the default day-based proration logic.
// Charges accrue in advance: a cycle is billed in full as soon as the
// target date reaches the boundary that starts it, and partial periods are
// priced against the actual day count of their own reference cycle.
type dayBasedCalculator struct{}

func (c *dayBasedCalculator) CalculateNumberOfBillingCycles(ctx context.Context, params ProrationParams) (*ProrationResult, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	// Boundary math is calendar-day arithmetic, deliberately timezone-naive.
	start := types.CivilDate(params.StartDate)
	target := types.CivilDate(params.TargetDate)
	var end *time.Time
	if params.EndDate != nil {
		e := types.CivilDate(*params.EndDate)
		end = &e
	}

	months := params.Period.Months()

	firstBoundary, err := billingcycle.BoundaryOnOrAfter(start, params.BillCycleDay, params.Period)
	if err != nil {
		return nil, err
	}

	result := &ProrationResult{Fraction: decimal.Zero}

	// Leading partial period: the segment starts off-cycle, so the span up
	// to the first boundary is billed as a fraction of the reference cycle
	// ending at that boundary. The reference cycle subtracts whole months
	// from the boundary without re-anchoring on the bill cycle day, so a
	// clamped boundary (bcd=31 landing on Feb 28) still measures against a
	// full-length reference cycle.
	if firstBoundary.After(start) {
		leadingEnd := firstBoundary
		if end != nil && end.Before(firstBoundary) {
			leadingEnd = *end
		}
		reference := types.AddClampedDate(firstBoundary, 0, -months, 0)
		if num := types.DaysBetween(start, leadingEnd); num > 0 {
			result.Fraction = result.Fraction.Add(cycleRatio(num, types.DaysBetween(reference, firstBoundary)))
		}
		if end != nil && !end.After(firstBoundary) {
			// The segment terminates before reaching a full cycle.
			return result, nil
		}
	}

	// Whole cycles, billed in advance once the target reaches the boundary
	// that starts them, followed by a trailing partial cycle when the
	// segment's end date cuts the last cycle short.
	cursor := firstBoundary
	for !cursor.After(target) {
		next, err := billingcycle.NextBillingCycleDate(cursor, params.BillCycleDay, params.Period)
		if err != nil {
			return nil, err
		}
		if end == nil || !next.After(*end) {
			result.WholeCycles++
			cursor = next
			continue
		}
		if end.After(cursor) {
			num := types.DaysBetween(cursor, *end)
			den := types.DaysBetween(cursor, next)
			result.Fraction = result.Fraction.Add(cycleRatio(num, den))
		}
		break
	}

	return result, nil
}

// cycleRatio divides a day count by a reference cycle's day count, rounded
// half-up at the fixed proration scale.
func cycleRatio(days, cycleDays int) decimal.Decimal {
	if cycleDays <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(days)).
		DivRound(decimal.NewFromInt(int64(cycleDays)), types.ProrationScale)
}

// validateParams checks the date sequence and billing inputs.
func validateParams(params ProrationParams) error {
	if params.StartDate.IsZero() || params.TargetDate.IsZero() {
		return ierr.NewError("invalid date sequence").
			WithHint("Start date and target date are required").
			Mark(ierr.ErrValidation)
	}
	if params.EndDate != nil && params.EndDate.Before(params.StartDate) {
		return ierr.NewError("invalid date sequence").
			WithHintf("End date %s is before start date %s",
				params.EndDate.Format("2006-01-02"), params.StartDate.Format("2006-01-02")).
			Mark(ierr.ErrValidation)
	}
	if params.BillCycleDay < 1 || params.BillCycleDay > 31 {
		return ierr.NewError("invalid bill cycle day").
			WithHintf("Bill cycle day must be between 1 and 31, got %d", params.BillCycleDay).
			Mark(ierr.ErrValidation)
	}
	if err := params.Period.Validate(); err != nil {
		return err
	}
	if !params.Period.IsRecurring() {
		return ierr.NewError("unsupported billing period").
			WithHintf("Billing period %s has no recurring cycle to prorate", params.Period).
			Mark(ierr.ErrValidation)
	}
	return nil
}
