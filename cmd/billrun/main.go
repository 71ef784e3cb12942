// billrun is a dry-run invoice tool: it loads a billing scenario from a
// JSON file, builds the subscription's billing event stream, and prints the
// prorated recurring charges up to a target date. Nothing is persisted.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/flexprice/billcycle/internal/cache"
	"github.com/flexprice/billcycle/internal/config"
	"github.com/flexprice/billcycle/internal/domain/account"
	"github.com/flexprice/billcycle/internal/domain/billingevent"
	"github.com/flexprice/billcycle/internal/domain/catalog"
	"github.com/flexprice/billcycle/internal/domain/proration"
	"github.com/flexprice/billcycle/internal/domain/subscription"
	ierr "github.com/flexprice/billcycle/internal/errors"
	"github.com/flexprice/billcycle/internal/logger"
	"github.com/flexprice/billcycle/internal/service"
	"github.com/flexprice/billcycle/internal/types"
	"go.uber.org/fx"
)

func init() {
	// Billing boundary math assumes UTC process time.
	time.Local = time.UTC
}

// scenario is the JSON input: one subscription's world, catalog included.
type scenario struct {
	Account      *account.Account           `json:"account"`
	Bundle       *account.Bundle            `json:"bundle"`
	Subscription *subscription.Subscription `json:"subscription"`
	Transitions  []*subscription.Transition `json:"transitions"`
	Plans        []scenarioPlan             `json:"plans"`
}

type scenarioPlan struct {
	Plan             *catalog.Plan          `json:"plan"`
	BillingAlignment types.BillingAlignment `json:"billing_alignment"`
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Could not read scenario file %s", path).
			Mark(ierr.ErrValidation)
	}
	var s scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Scenario file is not valid JSON").
			Mark(ierr.ErrValidation)
	}
	if s.Account == nil || s.Subscription == nil {
		return nil, ierr.NewError("incomplete scenario").
			WithHint("Scenario needs at least an account and a subscription").
			Mark(ierr.ErrValidation)
	}
	return &s, nil
}

// scenarioCatalog serves the plans bundled inside the scenario file.
type scenarioCatalog struct {
	plans      map[string]*catalog.Plan
	phases     map[string]*catalog.PlanPhase
	alignments map[string]types.BillingAlignment
}

func newScenarioCatalog(s *scenario) catalog.Catalog {
	c := &scenarioCatalog{
		plans:      make(map[string]*catalog.Plan),
		phases:     make(map[string]*catalog.PlanPhase),
		alignments: make(map[string]types.BillingAlignment),
	}
	for _, sp := range s.Plans {
		c.plans[sp.Plan.Name] = sp.Plan
		c.alignments[sp.Plan.Name] = sp.BillingAlignment
		for _, phase := range sp.Plan.Phases {
			c.phases[phase.Name] = phase
		}
	}
	return c
}

func (c *scenarioCatalog) FindPlan(_ context.Context, name string, _ time.Time) (*catalog.Plan, error) {
	plan, ok := c.plans[name]
	if !ok {
		return nil, ierr.NewErrorf("plan %s not found", name).Mark(ierr.ErrNotFound)
	}
	return plan, nil
}

func (c *scenarioCatalog) FindPhase(_ context.Context, name string, _ time.Time) (*catalog.PlanPhase, error) {
	phase, ok := c.phases[name]
	if !ok {
		return nil, ierr.NewErrorf("phase %s not found", name).Mark(ierr.ErrNotFound)
	}
	return phase, nil
}

func (c *scenarioCatalog) BillingAlignment(_ context.Context, spec catalog.AlignmentSpecifier) (types.BillingAlignment, error) {
	alignment, ok := c.alignments[spec.PlanName]
	if !ok {
		return "", ierr.NewErrorf("no billing alignment for plan %s", spec.PlanName).Mark(ierr.ErrNotFound)
	}
	return alignment, nil
}

func main() {
	scenarioPath := flag.String("scenario", "scenario.json", "path to the scenario JSON file")
	targetFlag := flag.String("target", "", "target date YYYY-MM-DD (default today)")
	flag.Parse()

	targetDate := time.Now().UTC()
	if *targetFlag != "" {
		parsed, err := time.Parse("2006-01-02", *targetFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid target date %q: %v\n", *targetFlag, err)
			os.Exit(1)
		}
		targetDate = parsed
	}

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			cache.NewInMemoryCache,
			proration.NewCalculatorFromConfig,
			func() (*scenario, error) { return loadScenario(*scenarioPath) },
			newScenarioCatalog,
			func(log *logger.Logger, cfg *config.Configuration, calc proration.Calculator, cat catalog.Catalog) service.ServiceParams {
				return service.ServiceParams{
					Logger:              log,
					Config:              cfg,
					ProrationCalculator: calc,
					Catalog:             cat,
				}
			},
			service.NewBillingService,
		),
		fx.Invoke(func(s *scenario, svc service.BillingService, log *logger.Logger) error {
			return run(s, svc, log, targetDate)
		}),
	)

	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "billrun failed: %v\n", err)
		os.Exit(1)
	}
}

func run(s *scenario, svc service.BillingService, log *logger.Logger, targetDate time.Time) error {
	ctx := context.Background()
	runID := types.GenerateShortID()
	log.Infow("starting dry run",
		"run_id", runID,
		"subscription_id", s.Subscription.ID,
		"target_date", targetDate.Format("2006-01-02"))

	stream, err := svc.BuildBillingEvents(ctx, billingevent.BuildParams{
		Account:      s.Account,
		Bundle:       s.Bundle,
		Subscription: s.Subscription,
		Transitions:  s.Transitions,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d billing events for subscription %s\n\n",
		runID, len(stream.Events), s.Subscription.ID)

	if stream.BCDResolution != nil {
		fmt.Printf("derived bill cycle day %d for account %s (needs persisting)\n\n",
			stream.BCDResolution.Day, s.Account.ID)
	}

	// Each recurring event is priced over the span from its effective date
	// to the next event, open-ended for the last one.
	type span struct {
		event *billingevent.BillingEvent
		item  service.RecurringChargeParams
	}
	spans := make([]span, 0, len(stream.Events))
	for i, ev := range stream.Events {
		if !ev.HasRecurringCharge() {
			continue
		}
		params := proration.ProrationParams{
			StartDate:    ev.EffectiveDate,
			TargetDate:   targetDate,
			BillCycleDay: ev.BillCycleDay,
			Period:       ev.BillingPeriod,
		}
		if i+1 < len(stream.Events) {
			end := stream.Events[i+1].EffectiveDate
			params.EndDate = &end
		}
		spans = append(spans, span{
			event: ev,
			item: service.RecurringChargeParams{
				UnitPrice: *ev.RecurringPrice,
				Proration: params,
			},
		})
	}

	items := make([]service.RecurringChargeParams, len(spans))
	for i, sp := range spans {
		items[i] = sp.item
	}
	outcomes := svc.CalculateRecurringCharges(ctx, items)

	total := service.RecurringCharge{}
	for i, outcome := range outcomes {
		ev := spans[i].event
		if outcome.Err != nil {
			fmt.Printf("  %s %s/%s: error: %v\n",
				ev.EffectiveDate.Format("2006-01-02"), ev.PlanName, ev.PhaseName, outcome.Err)
			continue
		}
		fmt.Printf("  %s %s/%s: %d cycle(s) + %s, %s %s\n",
			ev.EffectiveDate.Format("2006-01-02"),
			ev.PlanName, ev.PhaseName,
			outcome.Charge.Cycles.WholeCycles,
			outcome.Charge.Cycles.Fraction,
			outcome.Charge.Amount,
			s.Account.Currency)
		total.Amount = total.Amount.Add(outcome.Charge.Amount)
	}

	fmt.Printf("\ntotal recurring charges: %s %s\n", total.Amount, s.Account.Currency)
	return nil
}
