package memory

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is an in-memory implementation of driven.SnapshotStore.
// URLs point at a fake host so tests can assert on them.
type SnapshotStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string][]byte
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		baseURL: "https://snapshots.test/",
		objects: make(map[string][]byte),
	}
}

// Put stores an image.
func (s *SnapshotStore) Put(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = data
	return nil
}

// URL returns a link for a stored image.
func (s *SnapshotStore) URL(_ context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[name]; !ok {
		return "", fmt.Errorf("snapshot %s: %w", name, domain.ErrNotFound)
	}
	return s.baseURL + url.PathEscape(name), nil
}

// Object returns a stored image.
func (s *SnapshotStore) Object(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[name]
	return data, ok
}
