package driven

import (
	"context"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// FragmentExtractor splits a web page into paragraph fragments.
type FragmentExtractor interface {
	// Extract fetches pageURL and returns its paragraphs in document order.
	// Empty paragraphs are omitted but still counted in ordinals.
	Extract(ctx context.Context, pageURL string) ([]domain.PageFragment, error)
}
