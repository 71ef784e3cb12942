// Package billingevent turns a subscription's lifecycle transitions into
// the totally ordered billing event stream invoice generation consumes.
package billingevent

import (
	"context"
	"sort"
	"time"

	"github.com/flexprice/billcycle/internal/domain/account"
	"github.com/flexprice/billcycle/internal/domain/bcd"
	"github.com/flexprice/billcycle/internal/domain/catalog"
	"github.com/flexprice/billcycle/internal/domain/subscription"
	ierr "github.com/flexprice/billcycle/internal/errors"
	"github.com/flexprice/billcycle/internal/logger"
	"github.com/flexprice/billcycle/internal/types"
)

// BuildParams carries everything needed to build one subscription's stream.
type BuildParams struct {
	Account      *account.Account
	Bundle       *account.Bundle
	Subscription *subscription.Subscription
	Transitions  []*subscription.Transition
}

// Stream is the ordered billing event timeline for a subscription.
type Stream struct {
	Events []*BillingEvent

	// BCDResolution is set when building the stream had to derive a bill
	// cycle day for an account that has none. The caller is responsible
	// for persisting it.
	BCDResolution *bcd.Resolution
}

// Builder assembles billing event streams from lifecycle transitions.
type Builder struct {
	catalog  catalog.Catalog
	resolver *bcd.Resolver
	logger   *logger.Logger
}

func NewBuilder(cat catalog.Catalog, resolver *bcd.Resolver, log *logger.Logger) *Builder {
	return &Builder{catalog: cat, resolver: resolver, logger: log}
}

// Build resolves each transition against the catalog, anchors every event
// on its bill cycle day, and returns the events in total order.
//
// Transitions whose plan or phase is missing from the catalog are skipped
// with a warning rather than failing the whole stream; any other catalog
// error is fatal.
func (b *Builder) Build(ctx context.Context, params BuildParams) (*Stream, error) {
	if params.Account == nil || params.Subscription == nil {
		return nil, ierr.NewError("account and subscription are required").
			WithHint("Billing events are built per subscription in the context of its account").
			Mark(ierr.ErrValidation)
	}

	type pending struct {
		event *BillingEvent
		plan  *catalog.Plan
		phase *catalog.PlanPhase
	}

	pendings := make([]pending, 0, len(params.Transitions))
	var firstRecurringCharge *time.Time

	for _, tr := range params.Transitions {
		if err := tr.Type.Validate(); err != nil {
			return nil, err
		}

		// A cancellation ends the state it inherited, so it is priced off
		// the previous plan and phase; every other transition is priced
		// off the state it establishes.
		planName, phaseName := tr.NextPlan, tr.NextPhase
		if tr.Type == types.TRANSITION_CANCEL {
			planName, phaseName = tr.PreviousPlan, tr.PreviousPhase
		}

		plan, err := b.catalog.FindPlan(ctx, planName, tr.EffectiveDate)
		if err != nil {
			if ierr.IsNotFound(err) {
				b.logger.Warnw("skipping transition with unknown plan",
					"subscription_id", tr.SubscriptionID,
					"transition_id", tr.ID,
					"plan", planName)
				continue
			}
			return nil, err
		}
		phase, err := b.catalog.FindPhase(ctx, phaseName, tr.EffectiveDate)
		if err != nil {
			if ierr.IsNotFound(err) {
				b.logger.Warnw("skipping transition with unknown phase",
					"subscription_id", tr.SubscriptionID,
					"transition_id", tr.ID,
					"phase", phaseName)
				continue
			}
			return nil, err
		}

		period := phase.BillingPeriod
		if period == "" {
			period = plan.BillingPeriod
		}

		event := &BillingEvent{
			ID:             types.GenerateUUIDWithPrefix("bev"),
			SubscriptionID: tr.SubscriptionID,
			EffectiveDate:  tr.EffectiveDate.UTC(),
			PlanName:       plan.Name,
			PhaseName:      phase.Name,
			FixedPrice:     phase.FixedPrice,
			RecurringPrice: phase.RecurringPrice,
			BillingPeriod:  period,
			TransitionType: tr.Type,
			TotalOrdering:  tr.TotalOrdering,
		}
		pendings = append(pendings, pending{event: event, plan: plan, phase: phase})

		if event.HasRecurringCharge() &&
			(firstRecurringCharge == nil || event.EffectiveDate.Before(*firstRecurringCharge)) {
			d := event.EffectiveDate
			firstRecurringCharge = &d
		}
	}

	stream := &Stream{Events: make([]*BillingEvent, 0, len(pendings))}

	for _, p := range pendings {
		alignment, err := b.catalog.BillingAlignment(ctx, catalog.AlignmentSpecifier{
			PlanName:      p.plan.Name,
			PhaseType:     p.phase.Type,
			PriceList:     p.plan.PriceList,
			BillingPeriod: p.event.BillingPeriod,
			EffectiveDate: p.event.EffectiveDate,
		})
		if err != nil {
			return nil, err
		}

		resolution, err := b.resolver.Resolve(ctx, bcd.ResolveParams{
			Alignment:                alignment,
			Account:                  params.Account,
			Bundle:                   params.Bundle,
			Subscription:             params.Subscription,
			FirstRecurringChargeDate: firstRecurringCharge,
		})
		if err != nil {
			return nil, err
		}

		p.event.BillCycleDay = resolution.Day
		if resolution.ShouldPersist && stream.BCDResolution == nil {
			stream.BCDResolution = resolution
		}
		stream.Events = append(stream.Events, p.event)
	}

	sort.SliceStable(stream.Events, func(i, j int) bool {
		return Compare(stream.Events[i], stream.Events[j]) < 0
	})
	for i := 1; i < len(stream.Events); i++ {
		if Compare(stream.Events[i-1], stream.Events[i]) == 0 {
			b.logger.Warnw("billing events with identical ordering",
				"subscription_id", stream.Events[i].SubscriptionID,
				"effective_date", stream.Events[i].EffectiveDate,
				"transition_type", stream.Events[i].TransitionType)
		}
	}

	return stream, nil
}
