package driven

import (
	"context"
	"io"
)

// SnapshotStore keeps snapshot images of where fragments appear on a page.
type SnapshotStore interface {
	// Put uploads an image under name.
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error

	// URL returns a temporary link to the named image.
	URL(ctx context.Context, name string) (string, error)
}
