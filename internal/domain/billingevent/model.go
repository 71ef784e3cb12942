package billingevent

import (
	"time"

	"github.com/flexprice/billcycle/internal/types"
	"github.com/shopspring/decimal"
)

// BillingEvent is one point on a subscription's billing timeline: the
// pricing snapshot in effect from its effective date until the next event.
type BillingEvent struct {
	// ID is the unique identifier for the billing event
	ID string `json:"id"`

	// SubscriptionID is the subscription this event belongs to
	SubscriptionID string `json:"subscription_id"`

	// EffectiveDate is the UTC instant the event takes effect
	EffectiveDate time.Time `json:"effective_date"`

	// PlanName and PhaseName reference the catalog state billed from this
	// event on. For cancellations this is the state being ended.
	PlanName  string `json:"plan_name"`
	PhaseName string `json:"phase_name"`

	// FixedPrice is the one-off charge at this event, nil when absent
	FixedPrice *decimal.Decimal `json:"fixed_price,omitempty"`

	// RecurringPrice is the per-cycle charge from this event on, nil when
	// absent
	RecurringPrice *decimal.Decimal `json:"recurring_price,omitempty"`

	// BillingPeriod is the recurring interval in effect
	BillingPeriod types.BillingPeriod `json:"billing_period"`

	// BillCycleDay anchors the cycle boundaries for this event's span
	BillCycleDay int `json:"bill_cycle_day"`

	// TransitionType is the lifecycle transition that produced this event
	TransitionType types.TransitionType `json:"transition_type"`

	// TotalOrdering is carried over from the source transition and breaks
	// comparator ties
	TotalOrdering int64 `json:"total_ordering"`
}

// HasRecurringCharge reports whether the event bills a non-zero recurring
// price.
func (e *BillingEvent) HasRecurringCharge() bool {
	return e.RecurringPrice != nil && e.RecurringPrice.IsPositive()
}

// Compare imposes the total order of the billing event stream:
// subscription, then effective instant, then transition precedence, then
// the recorded total ordering. Two distinct events never compare equal
// unless the source data is corrupt.
func Compare(a, b *BillingEvent) int {
	if a.SubscriptionID != b.SubscriptionID {
		if a.SubscriptionID < b.SubscriptionID {
			return -1
		}
		return 1
	}
	if !a.EffectiveDate.Equal(b.EffectiveDate) {
		if a.EffectiveDate.Before(b.EffectiveDate) {
			return -1
		}
		return 1
	}
	if pa, pb := a.TransitionType.Precedence(), b.TransitionType.Precedence(); pa != pb {
		if pa < pb {
			return -1
		}
		return 1
	}
	switch {
	case a.TotalOrdering < b.TotalOrdering:
		return -1
	case a.TotalOrdering > b.TotalOrdering:
		return 1
	default:
		return 0
	}
}
