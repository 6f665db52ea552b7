package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
)

// Ensure ReconciliationStore implements the interface.
var _ driven.ReconciliationStore = (*ReconciliationStore)(nil)

// ReconciliationStore is an in-memory implementation of driven.ReconciliationStore.
type ReconciliationStore struct {
	mu      sync.RWMutex
	markers map[string]domain.Reconciliation
}

// NewReconciliationStore creates a new in-memory reconciliation store.
func NewReconciliationStore() *ReconciliationStore {
	return &ReconciliationStore{
		markers: make(map[string]domain.Reconciliation),
	}
}

// Save stores or updates a marker.
func (s *ReconciliationStore) Save(_ context.Context, r domain.Reconciliation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.Completed = append([]domain.RegistrationStep(nil), r.Completed...)
	s.markers[r.ID] = r
	return nil
}

// Get retrieves a marker by ID.
func (s *ReconciliationStore) Get(_ context.Context, id string) (*domain.Reconciliation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.markers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

// List returns markers ordered by creation time.
func (s *ReconciliationStore) List(_ context.Context, includeResolved bool) ([]domain.Reconciliation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Reconciliation, 0, len(s.markers))
	for _, r := range s.markers {
		if r.IsResolved() && !includeResolved {
			continue
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a marker.
func (s *ReconciliationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.markers, id)
	return nil
}
