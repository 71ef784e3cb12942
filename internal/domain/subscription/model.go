package subscription

import (
	"time"

	"github.com/flexprice/billcycle/internal/types"
)

// Subscription is the billing-relevant slice of a subscription.
type Subscription struct {
	// ID is the unique identifier for the subscription
	ID string `json:"id"`

	// BundleID is the bundle this subscription belongs to
	BundleID string `json:"bundle_id"`

	// PlanName is the current catalog plan
	PlanName string `json:"plan_name"`

	// StartDate is when the subscription started (UTC)
	StartDate time.Time `json:"start_date"`
}

// Transition is one entry of a subscription's ordered lifecycle timeline.
// Plan and phase references are catalog names; previous/next distinguish
// the state immediately before and after the transition takes effect.
type Transition struct {
	// ID is the unique identifier for the transition
	ID string `json:"id"`

	// SubscriptionID is the subscription this transition belongs to
	SubscriptionID string `json:"subscription_id"`

	// EffectiveDate is the UTC instant the transition takes effect
	EffectiveDate time.Time `json:"effective_date"`

	// Type is the kind of lifecycle transition
	Type types.TransitionType `json:"type"`

	// PreviousPlan and PreviousPhase reference the state before the
	// transition, empty for CREATE
	PreviousPlan  string `json:"previous_plan,omitempty"`
	PreviousPhase string `json:"previous_phase,omitempty"`

	// NextPlan and NextPhase reference the state after the transition,
	// empty for CANCEL
	NextPlan  string `json:"next_plan,omitempty"`
	NextPhase string `json:"next_phase,omitempty"`

	// TotalOrdering is a strictly increasing sequence number assigned when
	// the transition was recorded; it is the final comparator tie-break
	TotalOrdering int64 `json:"total_ordering"`
}
