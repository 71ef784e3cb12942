// Package proration computes how many billing cycles, whole and
// fractional, a subscription segment covers between date boundaries.
package proration

import (
	"context"
)

// Service defines the operations for computing billing cycle coverage.
type Service interface {
	// CalculateNumberOfBillingCycles computes the whole and fractional
	// billing cycles a segment covers up to the target date. It does not
	// persist anything.
	CalculateNumberOfBillingCycles(ctx context.Context, params ProrationParams) (*ProrationResult, error)
}

// Calculator performs the underlying computation.
// It's kept separate from the service to allow different calculation
// strategies or easier testing.
type Calculator interface {
	CalculateNumberOfBillingCycles(ctx context.Context, params ProrationParams) (*ProrationResult, error)
}
