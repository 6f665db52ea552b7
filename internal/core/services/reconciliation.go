package services

import (
	"context"
	"fmt"
	"time"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// Ensure ReconciliationService implements the interface.
var _ driving.ReconciliationService = (*ReconciliationService)(nil)

// registrationReplayer reruns a registration without recording new markers.
type registrationReplayer interface {
	Replay(ctx context.Context, reg domain.VideoRegistration) (*domain.RegistrationReport, error)
}

// ReconciliationService replays registrations that stopped partway.
// Registration is idempotent, so a replay that completes converges the
// fragment and interpreter sheets.
type ReconciliationService struct {
	store    driven.ReconciliationStore
	replayer registrationReplayer
	now      func() time.Time
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(store driven.ReconciliationStore, replayer registrationReplayer) *ReconciliationService {
	return &ReconciliationService{
		store:    store,
		replayer: replayer,
		now:      time.Now,
	}
}

// List returns markers, oldest first.
func (s *ReconciliationService) List(ctx context.Context, includeResolved bool) ([]domain.Reconciliation, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx, includeResolved)
}

// Retry replays one marker. A marker that is already resolved is returned
// unchanged.
func (s *ReconciliationService) Retry(ctx context.Context, id string) (*driving.RetryResult, error) {
	if s.store == nil || s.replayer == nil {
		return nil, domain.ErrNotImplemented
	}
	marker, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reconciliation %s: %w", id, err)
	}
	if marker.IsResolved() {
		return &driving.RetryResult{Reconciliation: *marker}, nil
	}
	return s.replay(ctx, *marker)
}

// RetryAll replays every pending marker. A failing replay does not stop
// the others; only a store failure is returned as an error.
func (s *ReconciliationService) RetryAll(ctx context.Context) ([]driving.RetryResult, error) {
	if s.store == nil || s.replayer == nil {
		return nil, domain.ErrNotImplemented
	}
	pending, err := s.store.List(ctx, false)
	if err != nil {
		return nil, err
	}

	results := make([]driving.RetryResult, 0, len(pending))
	for _, marker := range pending {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := s.replay(ctx, marker)
		if err != nil {
			return results, err
		}
		results = append(results, *res)
	}
	return results, nil
}

// replay reruns a marker and saves the outcome. The returned error is set
// only when the outcome could not be saved.
func (s *ReconciliationService) replay(ctx context.Context, marker domain.Reconciliation) (*driving.RetryResult, error) {
	marker.Attempts++
	_, replayErr := s.replayer.Replay(ctx, marker.Registration())
	if replayErr == nil {
		now := s.now()
		marker.ResolvedAt = &now
		marker.Error = ""
		logger.Info("reconciliation %s resolved after %d attempt(s)", marker.ID, marker.Attempts)
	} else {
		marker.Error = replayErr.Error()
		logger.Warn("reconciliation %s still pending: %v", marker.ID, replayErr)
	}

	if err := s.store.Save(ctx, marker); err != nil {
		return nil, fmt.Errorf("save reconciliation %s: %w", marker.ID, err)
	}
	return &driving.RetryResult{Reconciliation: marker, Err: replayErr}, nil
}
