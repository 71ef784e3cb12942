package proration

import (
	"context"
	"time"

	"github.com/flexprice/billcycle/internal/cache"
)

// memoCalculator caches results per input tuple. The computation is a pure
// function of its params, so a hit is always safe to return.
type memoCalculator struct {
	inner Calculator
	cache cache.Cache
	ttl   time.Duration
}

// NewMemoCalculator wraps a calculator with per-tuple memoization.
func NewMemoCalculator(inner Calculator, c cache.Cache, ttl time.Duration) Calculator {
	return &memoCalculator{inner: inner, cache: c, ttl: ttl}
}

func (m *memoCalculator) CalculateNumberOfBillingCycles(ctx context.Context, params ProrationParams) (*ProrationResult, error) {
	key := cache.PrefixProration + params.CacheKey()
	if cached, found := m.cache.Get(ctx, key); found {
		if result, ok := cached.(*ProrationResult); ok {
			copied := *result
			return &copied, nil
		}
	}

	result, err := m.inner.CalculateNumberOfBillingCycles(ctx, params)
	if err != nil {
		return nil, err
	}

	stored := *result
	m.cache.Set(ctx, key, &stored, m.ttl)
	return result, nil
}
