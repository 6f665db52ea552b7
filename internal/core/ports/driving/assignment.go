package driving

import (
	"context"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// AssignmentService picks fragments that still need a translation.
type AssignmentService interface {
	// SelectForTranslation returns unassigned fragments in store order,
	// enriched with their site URL. Without ReturnAll at most one is returned.
	// No match is an empty slice, not an error.
	SelectForTranslation(ctx context.Context, opts domain.SelectionOptions) ([]domain.TranslationCandidate, error)
}
