package types

import (
	ierr "github.com/flexprice/billcycle/internal/errors"
	"github.com/samber/lo"
)

// TransitionType is the kind of subscription lifecycle transition that
// produces a billing event.
type TransitionType string

const (
	TRANSITION_CREATE    TransitionType = "CREATE"
	TRANSITION_RE_CREATE TransitionType = "RE_CREATE"
	TRANSITION_CHANGE    TransitionType = "CHANGE"
	TRANSITION_PHASE     TransitionType = "PHASE"
	TRANSITION_UNCANCEL  TransitionType = "UNCANCEL"
	TRANSITION_CANCEL    TransitionType = "CANCEL"
)

// TransitionTypeValues is the fixed precedence order used when two billing
// events share a subscription and effective date. Creation-like events sort
// before changes, cancellations last.
var TransitionTypeValues = []TransitionType{
	TRANSITION_CREATE,
	TRANSITION_RE_CREATE,
	TRANSITION_CHANGE,
	TRANSITION_PHASE,
	TRANSITION_UNCANCEL,
	TRANSITION_CANCEL,
}

// Precedence returns the index of the type in the fixed ordering.
// Unknown types sort after all known ones.
func (t TransitionType) Precedence() int {
	idx := lo.IndexOf(TransitionTypeValues, t)
	if idx < 0 {
		return len(TransitionTypeValues)
	}
	return idx
}

func (t TransitionType) String() string {
	return string(t)
}

func (t TransitionType) Validate() error {
	if !lo.Contains(TransitionTypeValues, t) {
		return ierr.NewError("invalid transition type").
			WithReportableDetails(map[string]any{
				"allowed_values": TransitionTypeValues,
				"provided_value": t,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PhaseType is the lifecycle stage of a plan phase
type PhaseType string

const (
	PHASE_TRIAL     PhaseType = "TRIAL"
	PHASE_DISCOUNT  PhaseType = "DISCOUNT"
	PHASE_EVERGREEN PhaseType = "EVERGREEN"
	PHASE_FIXEDTERM PhaseType = "FIXEDTERM"
)

var PhaseTypeValues = []PhaseType{
	PHASE_TRIAL,
	PHASE_DISCOUNT,
	PHASE_EVERGREEN,
	PHASE_FIXEDTERM,
}

func (p PhaseType) String() string {
	return string(p)
}

func (p PhaseType) Validate() error {
	if !lo.Contains(PhaseTypeValues, p) {
		return ierr.NewError("invalid phase type").
			WithReportableDetails(map[string]any{
				"allowed_values": PhaseTypeValues,
				"provided_value": p,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
