package service

import (
	"context"

	"github.com/flexprice/billcycle/internal/domain/proration"
)

type prorationService struct {
	ServiceParams
}

// NewProrationService exposes the configured calculator behind the domain
// service interface, with request-level logging.
func NewProrationService(params ServiceParams) proration.Service {
	return &prorationService{ServiceParams: params}
}

func (s *prorationService) CalculateNumberOfBillingCycles(ctx context.Context, params proration.ProrationParams) (*proration.ProrationResult, error) {
	result, err := s.ProrationCalculator.CalculateNumberOfBillingCycles(ctx, params)
	if err != nil {
		s.Logger.Errorw("proration calculation failed",
			"start_date", params.StartDate,
			"target_date", params.TargetDate,
			"bill_cycle_day", params.BillCycleDay,
			"billing_period", params.Period,
			"error", err)
		return nil, err
	}

	s.Logger.Debugw("calculated billing cycles",
		"start_date", params.StartDate,
		"target_date", params.TargetDate,
		"bill_cycle_day", params.BillCycleDay,
		"billing_period", params.Period,
		"whole_cycles", result.WholeCycles,
		"fraction", result.Fraction)
	return result, nil
}
