package service

import (
	"context"

	"github.com/flexprice/billcycle/internal/domain/bcd"
	"github.com/flexprice/billcycle/internal/domain/billingevent"
	"github.com/flexprice/billcycle/internal/domain/proration"
	ierr "github.com/flexprice/billcycle/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
)

// RecurringChargeParams prices one billed segment: the per-cycle unit
// price multiplied by the cycles the segment covers.
type RecurringChargeParams struct {
	UnitPrice decimal.Decimal
	Proration proration.ProrationParams
}

// RecurringCharge is a priced segment.
type RecurringCharge struct {
	// Amount is UnitPrice multiplied by the total cycles covered
	Amount decimal.Decimal

	// Cycles is the underlying proration breakdown
	Cycles *proration.ProrationResult
}

// RecurringChargeOutcome pairs a batch item with its result or error, in
// input order.
type RecurringChargeOutcome struct {
	Charge *RecurringCharge
	Err    error
}

// BillingService is the entry point for building billing event streams and
// pricing recurring charges against them.
type BillingService interface {
	// BuildBillingEvents turns a subscription's transitions into its
	// ordered billing event stream
	BuildBillingEvents(ctx context.Context, params billingevent.BuildParams) (*billingevent.Stream, error)

	// CalculateRecurringCharge prices a single segment
	CalculateRecurringCharge(ctx context.Context, params RecurringChargeParams) (*RecurringCharge, error)

	// CalculateRecurringCharges prices a batch of segments concurrently,
	// preserving input order and reporting per-item errors
	CalculateRecurringCharges(ctx context.Context, items []RecurringChargeParams) []*RecurringChargeOutcome
}

type billingService struct {
	ServiceParams
	builder *billingevent.Builder
}

func NewBillingService(params ServiceParams) BillingService {
	resolver := bcd.NewResolver(params.Logger)
	return &billingService{
		ServiceParams: params,
		builder:       billingevent.NewBuilder(params.Catalog, resolver, params.Logger),
	}
}

func (s *billingService) BuildBillingEvents(ctx context.Context, params billingevent.BuildParams) (*billingevent.Stream, error) {
	stream, err := s.builder.Build(ctx, params)
	if err != nil {
		return nil, err
	}

	if stream.BCDResolution != nil {
		s.Logger.Infow("bill cycle day derived during stream build",
			"subscription_id", params.Subscription.ID,
			"bill_cycle_day", stream.BCDResolution.Day)
	}
	return stream, nil
}

func (s *billingService) CalculateRecurringCharge(ctx context.Context, params RecurringChargeParams) (*RecurringCharge, error) {
	if params.UnitPrice.IsNegative() {
		return nil, ierr.NewError("invalid unit price").
			WithHintf("Unit price must not be negative, got %s", params.UnitPrice).
			Mark(ierr.ErrValidation)
	}

	cycles, err := s.ProrationCalculator.CalculateNumberOfBillingCycles(ctx, params.Proration)
	if err != nil {
		return nil, err
	}

	return &RecurringCharge{
		Amount: params.UnitPrice.Mul(cycles.Total()),
		Cycles: cycles,
	}, nil
}

// CalculateRecurringCharges fans the batch out across goroutines. Results
// land in a pre-sized slice indexed by input position, so ordering is
// deterministic regardless of completion order.
func (s *billingService) CalculateRecurringCharges(ctx context.Context, items []RecurringChargeParams) []*RecurringChargeOutcome {
	outcomes := make([]*RecurringChargeOutcome, len(items))

	var wg conc.WaitGroup
	for i := range items {
		i := i
		wg.Go(func() {
			charge, err := s.CalculateRecurringCharge(ctx, items[i])
			outcomes[i] = &RecurringChargeOutcome{Charge: charge, Err: err}
		})
	}
	wg.Wait()

	return outcomes
}
