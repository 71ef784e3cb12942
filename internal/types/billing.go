package types

import (
	ierr "github.com/flexprice/billcycle/internal/errors"
	"github.com/samber/lo"
)

// BillingPeriod is the recurring billing interval for a plan phase
// ex MONTHLY, QUARTERLY, ANNUAL
type BillingPeriod string

const (
	BILLING_PERIOD_MONTHLY   BillingPeriod = "MONTHLY"
	BILLING_PERIOD_QUARTERLY BillingPeriod = "QUARTERLY"
	BILLING_PERIOD_ANNUAL    BillingPeriod = "ANNUAL"

	// BILLING_PERIOD_NONE marks phases with no recurring charge
	// ex one-off fixed-price phases. It is never a valid input to the
	// billing cycle or proration calculators.
	BILLING_PERIOD_NONE BillingPeriod = "NO_BILLING_PERIOD"
)

var BillingPeriodValues = []BillingPeriod{
	BILLING_PERIOD_MONTHLY,
	BILLING_PERIOD_QUARTERLY,
	BILLING_PERIOD_ANNUAL,
	BILLING_PERIOD_NONE,
}

// Months returns the number of months one billing period spans.
// NO_BILLING_PERIOD maps to zero.
func (p BillingPeriod) Months() int {
	switch p {
	case BILLING_PERIOD_MONTHLY:
		return 1
	case BILLING_PERIOD_QUARTERLY:
		return 3
	case BILLING_PERIOD_ANNUAL:
		return 12
	default:
		return 0
	}
}

// IsRecurring reports whether the period generates recurring charges
func (p BillingPeriod) IsRecurring() bool {
	return p.Months() > 0
}

func (p BillingPeriod) String() string {
	return string(p)
}

func (p BillingPeriod) Validate() error {
	if !lo.Contains(BillingPeriodValues, p) {
		return ierr.NewError("invalid billing period").
			WithHint("Billing period must be MONTHLY, QUARTERLY, ANNUAL or NO_BILLING_PERIOD").
			WithReportableDetails(map[string]any{
				"allowed_values": BillingPeriodValues,
				"provided_value": p,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingAlignment determines which entity's start date governs the
// billing cycle day for a plan.
type BillingAlignment string

const (
	ALIGN_ACCOUNT      BillingAlignment = "ACCOUNT"
	ALIGN_BUNDLE       BillingAlignment = "BUNDLE"
	ALIGN_SUBSCRIPTION BillingAlignment = "SUBSCRIPTION"
)

var BillingAlignmentValues = []BillingAlignment{
	ALIGN_ACCOUNT,
	ALIGN_BUNDLE,
	ALIGN_SUBSCRIPTION,
}

func (a BillingAlignment) String() string {
	return string(a)
}

func (a BillingAlignment) Validate() error {
	if !lo.Contains(BillingAlignmentValues, a) {
		return ierr.NewError("invalid billing alignment").
			WithHint("Billing alignment must be ACCOUNT, BUNDLE or SUBSCRIPTION").
			WithReportableDetails(map[string]any{
				"allowed_values": BillingAlignmentValues,
				"provided_value": a,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ProrationScale is the fixed decimal scale for billing cycle fractions.
// Divisions are rounded half-up at this scale, matching invoice item math.
const ProrationScale int32 = 10
