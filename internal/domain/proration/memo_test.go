package proration

import (
	"context"
	"testing"
	"time"

	"github.com/flexprice/billcycle/internal/cache"
	"github.com/flexprice/billcycle/internal/config"
	"github.com/flexprice/billcycle/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCalculator tracks how often the real computation runs.
type countingCalculator struct {
	inner Calculator
	calls int
}

func (c *countingCalculator) CalculateNumberOfBillingCycles(ctx context.Context, params ProrationParams) (*ProrationResult, error) {
	c.calls++
	return c.inner.CalculateNumberOfBillingCycles(ctx, params)
}

func TestMemoCalculator(t *testing.T) {
	ctx := context.Background()
	counting := &countingCalculator{inner: NewCalculator(CalculatorTypeDay)}
	memo := NewMemoCalculator(counting, cache.NewInMemoryCache(), time.Minute)

	params := ProrationParams{
		StartDate:    date(2011, time.February, 10),
		TargetDate:   date(2011, time.March, 6),
		BillCycleDay: 10,
		Period:       types.BILLING_PERIOD_MONTHLY,
	}

	first, err := memo.CalculateNumberOfBillingCycles(ctx, params)
	require.NoError(t, err)
	second, err := memo.CalculateNumberOfBillingCycles(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, 1, counting.calls)
	assert.Equal(t, first.WholeCycles, second.WholeCycles)
	assert.True(t, first.Fraction.Equal(second.Fraction))

	// A different tuple misses the memo.
	other := params
	other.BillCycleDay = 15
	_, err = memo.CalculateNumberOfBillingCycles(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 2, counting.calls)
}

func TestMemoCalculator_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	counting := &countingCalculator{inner: NewCalculator(CalculatorTypeDay)}
	memo := NewMemoCalculator(counting, cache.NewInMemoryCache(), time.Minute)

	params := ProrationParams{
		StartDate:    date(2011, time.February, 10),
		TargetDate:   date(2011, time.March, 6),
		BillCycleDay: 0,
		Period:       types.BILLING_PERIOD_MONTHLY,
	}

	_, err := memo.CalculateNumberOfBillingCycles(ctx, params)
	require.Error(t, err)
	_, err = memo.CalculateNumberOfBillingCycles(ctx, params)
	require.Error(t, err)
	assert.Equal(t, 2, counting.calls)
}

func TestNewCalculatorFromConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()

	plain := NewCalculatorFromConfig(cfg, nil)
	_, ok := plain.(*memoCalculator)
	assert.False(t, ok)

	cfg.Proration.MemoEnabled = true
	memoized := NewCalculatorFromConfig(cfg, cache.NewInMemoryCache())
	_, ok = memoized.(*memoCalculator)
	assert.True(t, ok)
}
