package catalog

import (
	"github.com/flexprice/billcycle/internal/types"
	"github.com/shopspring/decimal"
)

// Plan is the catalog-side description of a purchasable plan.
type Plan struct {
	// Name is the unique plan identifier in the catalog
	Name string `json:"name"`

	// ProductName is the product this plan sells
	ProductName string `json:"product_name"`

	// PriceList is the price list the plan belongs to
	PriceList string `json:"price_list"`

	// BillingPeriod is the recurring interval of the plan's recurring phases
	BillingPeriod types.BillingPeriod `json:"billing_period"`

	// Phases are the ordered lifecycle phases of the plan
	Phases []*PlanPhase `json:"phases"`
}

// PlanPhase is one lifecycle stage of a plan with its pricing snapshot.
// Phase names are unique across the catalog (ex "shotgun-monthly-evergreen").
type PlanPhase struct {
	// Name is the unique phase identifier in the catalog
	Name string `json:"name"`

	// PlanName is the owning plan
	PlanName string `json:"plan_name"`

	// Type is the lifecycle stage of the phase
	Type types.PhaseType `json:"type"`

	// BillingPeriod is the recurring interval for this phase,
	// NO_BILLING_PERIOD when the phase has no recurring charge
	BillingPeriod types.BillingPeriod `json:"billing_period"`

	// FixedPrice is the one-off charge at phase start, nil when absent
	FixedPrice *decimal.Decimal `json:"fixed_price,omitempty"`

	// RecurringPrice is the per-cycle charge, nil when absent
	RecurringPrice *decimal.Decimal `json:"recurring_price,omitempty"`
}

// HasRecurringCharge reports whether the phase carries a non-zero
// recurring price.
func (p *PlanPhase) HasRecurringCharge() bool {
	return p.RecurringPrice != nil && p.RecurringPrice.IsPositive()
}
