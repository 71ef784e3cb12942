package bcd

import (
	"context"
	"testing"
	"time"

	"github.com/flexprice/billcycle/internal/domain/account"
	"github.com/flexprice/billcycle/internal/domain/subscription"
	ierr "github.com/flexprice/billcycle/internal/errors"
	"github.com/flexprice/billcycle/internal/logger"
	"github.com/flexprice/billcycle/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver() *Resolver {
	return NewResolver(logger.L)
}

func TestResolve_AccountAlignment(t *testing.T) {
	resolver := newTestResolver()
	ctx := context.Background()

	t.Run("uses configured account bill cycle day", func(t *testing.T) {
		res, err := resolver.Resolve(ctx, ResolveParams{
			Alignment: types.ALIGN_ACCOUNT,
			Account:   &account.Account{ID: "acc_1", BillCycleDay: 25},
		})
		require.NoError(t, err)
		assert.Equal(t, 25, res.Day)
		assert.False(t, res.ShouldPersist)
	})

	t.Run("falls back to first recurring charge date", func(t *testing.T) {
		chargeDate := time.Date(2011, time.March, 14, 12, 0, 0, 0, time.UTC)
		res, err := resolver.Resolve(ctx, ResolveParams{
			Alignment:                types.ALIGN_ACCOUNT,
			Account:                  &account.Account{ID: "acc_1"},
			FirstRecurringChargeDate: &chargeDate,
		})
		require.NoError(t, err)
		assert.Equal(t, 14, res.Day)
		assert.True(t, res.ShouldPersist)
	})

	t.Run("derives day in the account timezone", func(t *testing.T) {
		// 02:00 UTC on Jan 15 is still Jan 14 in New York.
		chargeDate := time.Date(2011, time.January, 15, 2, 0, 0, 0, time.UTC)
		res, err := resolver.Resolve(ctx, ResolveParams{
			Alignment:                types.ALIGN_ACCOUNT,
			Account:                  &account.Account{ID: "acc_1", Timezone: "America/New_York"},
			FirstRecurringChargeDate: &chargeDate,
		})
		require.NoError(t, err)
		assert.Equal(t, 14, res.Day)
		assert.True(t, res.ShouldPersist)
	})

	t.Run("falls back to subscription start without a recurring charge", func(t *testing.T) {
		res, err := resolver.Resolve(ctx, ResolveParams{
			Alignment: types.ALIGN_ACCOUNT,
			Account:   &account.Account{ID: "acc_1"},
			Subscription: &subscription.Subscription{
				ID:        "sub_1",
				StartDate: time.Date(2011, time.February, 8, 0, 0, 0, 0, time.UTC),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 8, res.Day)
		assert.True(t, res.ShouldPersist)
	})

	t.Run("fails without any derivation source", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, ResolveParams{
			Alignment: types.ALIGN_ACCOUNT,
			Account:   &account.Account{ID: "acc_1"},
		})
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestResolve_BundleAlignment(t *testing.T) {
	resolver := newTestResolver()

	res, err := resolver.Resolve(context.Background(), ResolveParams{
		Alignment: types.ALIGN_BUNDLE,
		Account:   &account.Account{ID: "acc_1"},
		Bundle: &account.Bundle{
			ID:        "bun_1",
			AccountID: "acc_1",
			StartDate: time.Date(2011, time.April, 22, 0, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 22, res.Day)
	assert.False(t, res.ShouldPersist)
}

func TestResolve_SubscriptionAlignment(t *testing.T) {
	resolver := newTestResolver()

	res, err := resolver.Resolve(context.Background(), ResolveParams{
		Alignment: types.ALIGN_SUBSCRIPTION,
		Account:   &account.Account{ID: "acc_1"},
		Subscription: &subscription.Subscription{
			ID:        "sub_1",
			StartDate: time.Date(2011, time.May, 3, 0, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Day)
	assert.False(t, res.ShouldPersist)
}

func TestResolve_InvalidInputs(t *testing.T) {
	resolver := newTestResolver()
	ctx := context.Background()

	t.Run("unknown alignment", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, ResolveParams{
			Alignment: types.BillingAlignment("ALIGN_UNKNOWN"),
			Account:   &account.Account{ID: "acc_1"},
		})
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, ResolveParams{Alignment: types.ALIGN_ACCOUNT})
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("bundle alignment without bundle", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, ResolveParams{
			Alignment: types.ALIGN_BUNDLE,
			Account:   &account.Account{ID: "acc_1"},
		})
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("subscription alignment without subscription", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, ResolveParams{
			Alignment: types.ALIGN_SUBSCRIPTION,
			Account:   &account.Account{ID: "acc_1"},
		})
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}
