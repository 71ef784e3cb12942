package proration

import (
	"fmt"
	"time"

	"github.com/flexprice/billcycle/internal/types"
	"github.com/shopspring/decimal"
)

// ProrationParams identifies one billed segment of a subscription.
type ProrationParams struct {
	// StartDate is the civil date the segment starts billing
	StartDate time.Time

	// EndDate bounds a terminated segment (plan change or cancellation).
	// Nil for a segment that is still open. No cycles or fractions are
	// counted past it.
	EndDate *time.Time

	// TargetDate is the civil date the invoice run is billing up to.
	// Cycles are billed in advance: a cycle counts as soon as the target
	// reaches its starting boundary.
	TargetDate time.Time

	// BillCycleDay anchors the cycle boundaries, 1..31
	BillCycleDay int

	// Period is the recurring billing interval
	Period types.BillingPeriod
}

// CacheKey returns a stable key for memoizing results per input tuple.
func (p ProrationParams) CacheKey() string {
	end := ""
	if p.EndDate != nil {
		end = p.EndDate.Format("2006-01-02")
	}
	return fmt.Sprintf("%s:%s:%s:%d:%s",
		p.StartDate.Format("2006-01-02"),
		end,
		p.TargetDate.Format("2006-01-02"),
		p.BillCycleDay,
		p.Period,
	)
}

// ProrationResult is the number of billing cycles a segment covers up to
// the target date: complete cycles plus the summed leading/trailing
// partial-cycle fractions.
type ProrationResult struct {
	// WholeCycles is the count of complete billing cycles billed
	WholeCycles int

	// Fraction is the sum of partial-cycle fractions, each computed
	// against its own reference cycle's actual day count and rounded
	// half-up at types.ProrationScale
	Fraction decimal.Decimal
}

// Total returns whole cycles plus fraction, the multiplier applied to a
// per-cycle recurring price.
func (r *ProrationResult) Total() decimal.Decimal {
	return decimal.NewFromInt(int64(r.WholeCycles)).Add(r.Fraction)
}
