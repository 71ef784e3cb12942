package service

import (
	"context"
	"testing"
	"time"

	"github.com/flexprice/billcycle/internal/config"
	"github.com/flexprice/billcycle/internal/domain/account"
	"github.com/flexprice/billcycle/internal/domain/billingevent"
	"github.com/flexprice/billcycle/internal/domain/catalog"
	"github.com/flexprice/billcycle/internal/domain/proration"
	"github.com/flexprice/billcycle/internal/domain/subscription"
	ierr "github.com/flexprice/billcycle/internal/errors"
	"github.com/flexprice/billcycle/internal/logger"
	"github.com/flexprice/billcycle/internal/testutil"
	"github.com/flexprice/billcycle/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParams(t *testing.T) ServiceParams {
	t.Helper()

	price := decimal.NewFromFloat(249.95)
	store := testutil.NewInMemoryCatalogStore()
	store.AddPlan(&catalog.Plan{
		Name:          "shotgun-monthly",
		ProductName:   "Shotgun",
		PriceList:     "DEFAULT",
		BillingPeriod: types.BILLING_PERIOD_MONTHLY,
		Phases: []*catalog.PlanPhase{
			{
				Name:           "shotgun-monthly-evergreen",
				PlanName:       "shotgun-monthly",
				Type:           types.PHASE_EVERGREEN,
				BillingPeriod:  types.BILLING_PERIOD_MONTHLY,
				RecurringPrice: &price,
			},
		},
	}, types.ALIGN_SUBSCRIPTION)

	return ServiceParams{
		Logger:              logger.L,
		Config:              config.GetDefaultConfig(),
		ProrationCalculator: proration.NewCalculator(proration.CalculatorTypeDay),
		Catalog:             store,
	}
}

func TestCalculateRecurringCharge(t *testing.T) {
	svc := NewBillingService(newTestParams(t))
	ctx := context.Background()

	t.Run("full cycle bills the unit price", func(t *testing.T) {
		charge, err := svc.CalculateRecurringCharge(ctx, RecurringChargeParams{
			UnitPrice: decimal.NewFromFloat(249.95),
			Proration: proration.ProrationParams{
				StartDate:    time.Date(2011, time.February, 10, 0, 0, 0, 0, time.UTC),
				TargetDate:   time.Date(2011, time.February, 10, 0, 0, 0, 0, time.UTC),
				BillCycleDay: 10,
				Period:       types.BILLING_PERIOD_MONTHLY,
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, charge.Cycles.WholeCycles)
		assert.True(t, charge.Amount.Equal(decimal.NewFromFloat(249.95)),
			"amount mismatch: got %s", charge.Amount)
	})

	t.Run("partial cycle bills the fraction", func(t *testing.T) {
		endDate := time.Date(2011, time.February, 24, 0, 0, 0, 0, time.UTC)
		charge, err := svc.CalculateRecurringCharge(ctx, RecurringChargeParams{
			UnitPrice: decimal.NewFromInt(28),
			Proration: proration.ProrationParams{
				StartDate:    time.Date(2011, time.February, 10, 0, 0, 0, 0, time.UTC),
				EndDate:      &endDate,
				TargetDate:   time.Date(2011, time.March, 6, 0, 0, 0, 0, time.UTC),
				BillCycleDay: 10,
				Period:       types.BILLING_PERIOD_MONTHLY,
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, charge.Cycles.WholeCycles)
		// 14 of 28 days at 28 per cycle.
		assert.True(t, charge.Amount.Equal(decimal.NewFromInt(14)),
			"amount mismatch: got %s", charge.Amount)
	})

	t.Run("negative unit price is rejected", func(t *testing.T) {
		_, err := svc.CalculateRecurringCharge(ctx, RecurringChargeParams{
			UnitPrice: decimal.NewFromInt(-1),
			Proration: proration.ProrationParams{
				StartDate:    time.Date(2011, time.February, 10, 0, 0, 0, 0, time.UTC),
				TargetDate:   time.Date(2011, time.March, 10, 0, 0, 0, 0, time.UTC),
				BillCycleDay: 10,
				Period:       types.BILLING_PERIOD_MONTHLY,
			},
		})
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestCalculateRecurringCharges_Batch(t *testing.T) {
	svc := NewBillingService(newTestParams(t))

	valid := RecurringChargeParams{
		UnitPrice: decimal.NewFromInt(100),
		Proration: proration.ProrationParams{
			StartDate:    time.Date(2011, time.February, 10, 0, 0, 0, 0, time.UTC),
			TargetDate:   time.Date(2011, time.February, 10, 0, 0, 0, 0, time.UTC),
			BillCycleDay: 10,
			Period:       types.BILLING_PERIOD_MONTHLY,
		},
	}
	invalid := valid
	invalid.Proration.BillCycleDay = 0

	outcomes := svc.CalculateRecurringCharges(context.Background(),
		[]RecurringChargeParams{valid, invalid, valid})
	require.Len(t, outcomes, 3)

	require.NoError(t, outcomes[0].Err)
	assert.True(t, outcomes[0].Charge.Amount.Equal(decimal.NewFromInt(100)))

	require.Error(t, outcomes[1].Err)
	assert.True(t, ierr.IsValidation(outcomes[1].Err))
	assert.Nil(t, outcomes[1].Charge)

	require.NoError(t, outcomes[2].Err)
	assert.True(t, outcomes[2].Charge.Amount.Equal(decimal.NewFromInt(100)))
}

func TestBuildBillingEvents(t *testing.T) {
	svc := NewBillingService(newTestParams(t))
	start := time.Date(2011, time.February, 10, 0, 0, 0, 0, time.UTC)

	stream, err := svc.BuildBillingEvents(context.Background(), billingevent.BuildParams{
		Account: &account.Account{ID: "acc_1", BillCycleDay: 25, Currency: "usd"},
		Bundle:  &account.Bundle{ID: "bun_1", AccountID: "acc_1", StartDate: start},
		Subscription: &subscription.Subscription{
			ID:        "sub_1",
			BundleID:  "bun_1",
			PlanName:  "shotgun-monthly",
			StartDate: start,
		},
		Transitions: []*subscription.Transition{
			{
				ID:             "trn_1",
				SubscriptionID: "sub_1",
				EffectiveDate:  start,
				Type:           types.TRANSITION_CREATE,
				NextPlan:       "shotgun-monthly",
				NextPhase:      "shotgun-monthly-evergreen",
				TotalOrdering:  1,
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, stream.Events, 1)
	assert.Equal(t, 10, stream.Events[0].BillCycleDay)
	assert.Nil(t, stream.BCDResolution)
}
