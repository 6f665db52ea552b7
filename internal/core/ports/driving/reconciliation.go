package driving

import (
	"context"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// RetryResult is the outcome of replaying one marker.
type RetryResult struct {
	Reconciliation domain.Reconciliation
	Err            error
}

// ReconciliationService manages registrations that stopped partway.
type ReconciliationService interface {
	// List returns markers; resolved ones only when includeResolved is set.
	List(ctx context.Context, includeResolved bool) ([]domain.Reconciliation, error)

	// Retry replays one marker.
	Retry(ctx context.Context, id string) (*RetryResult, error)

	// RetryAll replays every pending marker, oldest first.
	RetryAll(ctx context.Context) ([]RetryResult, error)
}
