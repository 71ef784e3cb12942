// Package bcd resolves the bill cycle day anchoring a subscription's
// recurring billing, based on the billing alignment in effect.
package bcd

import (
	"context"
	"time"

	"github.com/flexprice/billcycle/internal/domain/account"
	"github.com/flexprice/billcycle/internal/domain/subscription"
	ierr "github.com/flexprice/billcycle/internal/errors"
	"github.com/flexprice/billcycle/internal/logger"
	"github.com/flexprice/billcycle/internal/types"
)

// Resolution is the outcome of resolving a bill cycle day.
type Resolution struct {
	// Day is the resolved bill cycle day, 1..31
	Day int

	// ShouldPersist is set when the day was derived as a fallback for an
	// account with no configured bill cycle day. The caller owns writing
	// it back; this package performs no side effects.
	ShouldPersist bool
}

// ResolveParams carries the entities the resolution reads from.
type ResolveParams struct {
	Alignment    types.BillingAlignment
	Account      *account.Account
	Bundle       *account.Bundle
	Subscription *subscription.Subscription

	// FirstRecurringChargeDate is the effective date of the subscription's
	// first billing event carrying a non-zero recurring price. Used only
	// for the account-alignment fallback when the account has no bill
	// cycle day yet.
	FirstRecurringChargeDate *time.Time
}

// Resolver computes bill cycle days. Stateless apart from its logger.
type Resolver struct {
	logger *logger.Logger
}

func NewResolver(log *logger.Logger) *Resolver {
	return &Resolver{logger: log}
}

// Resolve returns the bill cycle day for the given alignment. Days derived
// from dates are taken in the account's timezone, so an instant near
// midnight UTC resolves to the calendar day the account actually sees.
func (r *Resolver) Resolve(ctx context.Context, params ResolveParams) (*Resolution, error) {
	if err := params.Alignment.Validate(); err != nil {
		return nil, err
	}
	if params.Account == nil {
		return nil, ierr.NewError("account is required").
			WithHint("Bill cycle day resolution needs the account for its timezone").
			Mark(ierr.ErrValidation)
	}

	loc, err := params.Account.Location()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invalid account timezone %s", params.Account.Timezone).
			Mark(ierr.ErrValidation)
	}

	switch params.Alignment {
	case types.ALIGN_ACCOUNT:
		if params.Account.HasBillCycleDay() {
			return &Resolution{Day: params.Account.BillCycleDay}, nil
		}
		if params.FirstRecurringChargeDate == nil && params.Subscription == nil {
			return nil, ierr.NewError("cannot derive bill cycle day").
				WithHint("Account has no bill cycle day and no charge date or subscription was provided").
				Mark(ierr.ErrValidation)
		}
		derived := r.deriveAccountDay(params, loc)
		r.logger.Infow("derived bill cycle day for account without one",
			"account_id", params.Account.ID,
			"bill_cycle_day", derived)
		return &Resolution{Day: derived, ShouldPersist: true}, nil

	case types.ALIGN_BUNDLE:
		if params.Bundle == nil {
			return nil, ierr.NewError("bundle is required").
				WithHint("Bundle alignment derives the bill cycle day from the bundle start date").
				Mark(ierr.ErrValidation)
		}
		return &Resolution{Day: params.Bundle.StartDate.In(loc).Day()}, nil

	case types.ALIGN_SUBSCRIPTION:
		if params.Subscription == nil {
			return nil, ierr.NewError("subscription is required").
				WithHint("Subscription alignment derives the bill cycle day from the subscription start date").
				Mark(ierr.ErrValidation)
		}
		return &Resolution{Day: params.Subscription.StartDate.In(loc).Day()}, nil

	default:
		return nil, ierr.NewError("invalid billing alignment").
			WithHintf("Unsupported billing alignment %s", params.Alignment).
			Mark(ierr.ErrValidation)
	}
}

// deriveAccountDay picks the day of the first recurring charge, falling
// back to the subscription start when the plan never bills a recurring
// price (fixed-price only).
func (r *Resolver) deriveAccountDay(params ResolveParams, loc *time.Location) int {
	if params.FirstRecurringChargeDate != nil {
		return params.FirstRecurringChargeDate.In(loc).Day()
	}
	return params.Subscription.StartDate.In(loc).Day()
}
