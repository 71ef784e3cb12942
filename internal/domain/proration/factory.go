package proration

import (
	"github.com/flexprice/billcycle/internal/cache"
	"github.com/flexprice/billcycle/internal/config"
)

// NewCalculatorFromConfig builds the configured calculator, wrapped with
// memoization when enabled and a cache is available.
func NewCalculatorFromConfig(cfg *config.Configuration, c cache.Cache) Calculator {
	calc := NewCalculator(CalculatorType(cfg.Proration.CalculatorType))
	if cfg.Proration.MemoEnabled && c != nil {
		calc = NewMemoCalculator(calc, c, cfg.Proration.MemoTTL)
	}
	return calc
}
