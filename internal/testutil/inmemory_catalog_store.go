package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/flexprice/billcycle/internal/domain/catalog"
	ierr "github.com/flexprice/billcycle/internal/errors"
	"github.com/flexprice/billcycle/internal/types"
)

// InMemoryCatalogStore implements catalog.Catalog for tests and local runs.
type InMemoryCatalogStore struct {
	mu         sync.RWMutex
	plans      map[string]*catalog.Plan
	phases     map[string]*catalog.PlanPhase
	alignments map[string]types.BillingAlignment
}

func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{
		plans:      make(map[string]*catalog.Plan),
		phases:     make(map[string]*catalog.PlanPhase),
		alignments: make(map[string]types.BillingAlignment),
	}
}

// AddPlan registers a plan, its phases, and its billing alignment policy.
func (s *InMemoryCatalogStore) AddPlan(plan *catalog.Plan, alignment types.BillingAlignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.Name] = plan
	for _, phase := range plan.Phases {
		s.phases[phase.Name] = phase
	}
	s.alignments[plan.Name] = alignment
}

func (s *InMemoryCatalogStore) FindPlan(_ context.Context, name string, _ time.Time) (*catalog.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[name]
	if !ok {
		return nil, ierr.NewErrorf("plan %s not found", name).
			Mark(ierr.ErrNotFound)
	}
	return plan, nil
}

func (s *InMemoryCatalogStore) FindPhase(_ context.Context, name string, _ time.Time) (*catalog.PlanPhase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	phase, ok := s.phases[name]
	if !ok {
		return nil, ierr.NewErrorf("phase %s not found", name).
			Mark(ierr.ErrNotFound)
	}
	return phase, nil
}

func (s *InMemoryCatalogStore) BillingAlignment(_ context.Context, spec catalog.AlignmentSpecifier) (types.BillingAlignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alignment, ok := s.alignments[spec.PlanName]
	if !ok {
		return "", ierr.NewErrorf("no billing alignment for plan %s", spec.PlanName).
			Mark(ierr.ErrNotFound)
	}
	return alignment, nil
}
