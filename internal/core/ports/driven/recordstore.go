package driven

import (
	"context"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// RecordStore exposes typed records kept in a worksheet.
// Every call reads the sheet afresh: row positions shift after deletes,
// so they are resolved at call time and never cached.
type RecordStore[T any] interface {
	// GetOneByID returns the first record whose id matches.
	// Returns domain.ErrNotFound if none matches, domain.ErrInvalidInput if
	// the matching row cannot be parsed.
	GetOneByID(ctx context.Context, id int) (*T, error)

	// GetAll returns every parseable record in store order, restricted to
	// parentID when it is not nil. Rows that fail parsing are skipped.
	// An empty result is a non-nil empty slice.
	GetAll(ctx context.Context, parentID *int) ([]T, error)

	// DeleteOneByID removes the record's row.
	DeleteOneByID(ctx context.Context, id int) error

	// UpdateOneByID writes one field of one record. field must be a header
	// column; nil values are written as empty cells.
	UpdateOneByID(ctx context.Context, id int, field string, value any) error

	// Append adds a record as a new last row.
	Append(ctx context.Context, record T) error
}

// SiteStore persists sites.
type SiteStore = RecordStore[domain.Site]

// TrechoStore persists fragments. The parent of a fragment is its site.
type TrechoStore = RecordStore[domain.Trecho]

// InterpreteStore persists interpreters.
type InterpreteStore = RecordStore[domain.Interprete]
