package driving

import (
	"context"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// TrechoService reads and administers fragments.
type TrechoService interface {
	// GetConteudo returns the text of a fragment.
	GetConteudo(ctx context.Context, trechoID int) (string, error)

	// Get retrieves a fragment by ID.
	Get(ctx context.Context, trechoID int) (*domain.Trecho, error)

	// List returns fragments, restricted to a site when siteID is not nil.
	List(ctx context.Context, siteID *int) ([]domain.Trecho, error)

	// Delete removes a fragment row.
	Delete(ctx context.Context, trechoID int) error
}
