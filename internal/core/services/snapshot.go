package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
)

// Ensure SnapshotService implements the interface.
var _ driving.SnapshotService = (*SnapshotService)(nil)

// SnapshotService resolves snapshot images to temporary links.
type SnapshotService struct {
	store driven.SnapshotStore
}

// NewSnapshotService creates a new snapshot service. store may be nil.
func NewSnapshotService(store driven.SnapshotStore) *SnapshotService {
	return &SnapshotService{store: store}
}

// Available reports whether a snapshot store is configured.
func (s *SnapshotService) Available() bool {
	return s.store != nil
}

// URL returns a temporary link to the named snapshot.
func (s *SnapshotService) URL(ctx context.Context, name string) (string, error) {
	if s.store == nil {
		return "", domain.ErrSnapshotsUnavailable
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: invalid snapshot name %q", domain.ErrInvalidInput, name)
	}
	return s.store.URL(ctx, name)
}
