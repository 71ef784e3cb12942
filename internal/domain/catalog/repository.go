package catalog

import (
	"context"
	"time"

	"github.com/flexprice/billcycle/internal/types"
)

// AlignmentSpecifier identifies the plan/phase combination whose billing
// alignment policy is being looked up.
type AlignmentSpecifier struct {
	PlanName      string
	PhaseType     types.PhaseType
	PriceList     string
	BillingPeriod types.BillingPeriod
	EffectiveDate time.Time
}

// Catalog is the read-side lookup interface the billing core consumes.
// Implementations are expected to return errors marked ErrNotFound for
// missing entities; the billing event stream treats those as per-transition
// skip-and-log, not as fatal.
type Catalog interface {
	// FindPlan returns the plan with the given name effective at the date
	FindPlan(ctx context.Context, name string, effectiveDate time.Time) (*Plan, error)

	// FindPhase returns the phase with the given name effective at the date
	FindPhase(ctx context.Context, name string, effectiveDate time.Time) (*PlanPhase, error)

	// BillingAlignment returns the alignment policy for the specifier
	BillingAlignment(ctx context.Context, spec AlignmentSpecifier) (types.BillingAlignment, error)
}
