package driving

import (
	"context"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// SiteService manages the pages fragments come from.
type SiteService interface {
	// Register returns the site with this URL, creating it when absent.
	// created reports whether a row was appended.
	Register(ctx context.Context, siteURL string) (site *domain.Site, created bool, err error)

	// Get retrieves a site by ID.
	Get(ctx context.Context, siteID int) (*domain.Site, error)

	// List returns every site.
	List(ctx context.Context) ([]domain.Site, error)
}

// ImportService turns a web page into fragments.
type ImportService interface {
	// Import extracts the page's paragraphs and appends the new ones as
	// fragments of the page's site.
	Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportReport, error)
}

// SnapshotService resolves snapshot images.
type SnapshotService interface {
	// Available reports whether a snapshot store is configured.
	Available() bool

	// URL returns a temporary link to the named snapshot.
	URL(ctx context.Context, name string) (string, error)
}
