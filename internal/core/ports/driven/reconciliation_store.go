package driven

import (
	"context"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// ReconciliationStore persists markers for registrations that stopped partway.
type ReconciliationStore interface {
	// Save stores or updates a marker.
	Save(ctx context.Context, r domain.Reconciliation) error

	// Get retrieves a marker by ID.
	Get(ctx context.Context, id string) (*domain.Reconciliation, error)

	// List returns markers, oldest first. Resolved markers are included
	// only when includeResolved is true.
	List(ctx context.Context, includeResolved bool) ([]domain.Reconciliation, error)

	// Delete removes a marker.
	Delete(ctx context.Context, id string) error
}
