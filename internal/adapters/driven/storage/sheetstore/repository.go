package sheetstore

import (
	"context"
	"fmt"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// headerRows is the number of rows above the first record.
const headerRows = 1

// missingID never matches a real id. Rows whose id is absent or not an
// integer get it.
const missingID = -1

// Repository is a driven.RecordStore over one worksheet.
type Repository[T any] struct {
	ws    driven.Worksheet
	codec Codec[T]
}

// New creates a repository for the records described by codec.
func New[T any](ws driven.Worksheet, codec Codec[T]) *Repository[T] {
	return &Repository[T]{ws: ws, codec: codec}
}

// read loads the sheet and normalises every row.
func (r *Repository[T]) read(ctx context.Context) (*driven.Table, error) {
	table, err := r.ws.ReadAll(ctx)
	if err != nil {
		logger.Warn("%s: read failed: %v", r.ws.Name(), err)
		return nil, fmt.Errorf("read %s: %w", r.ws.Name(), err)
	}
	for i, row := range table.Rows {
		table.Rows[i] = normalise(row)
	}
	return table, nil
}

// locate returns the 0-based data index of the first row with id.
func (r *Repository[T]) locate(table *driven.Table, id int) int {
	for i, row := range table.Rows {
		if matchID(row, r.codec.IDColumn, id) {
			return i
		}
	}
	return -1
}

// GetOneByID returns the first record whose id matches.
func (r *Repository[T]) GetOneByID(ctx context.Context, id int) (*T, error) {
	table, err := r.read(ctx)
	if err != nil {
		return nil, err
	}

	idx := r.locate(table, id)
	if idx < 0 {
		logger.Debug("%s: %s %d not found", r.ws.Name(), r.codec.IDColumn, id)
		return nil, fmt.Errorf("%s %d: %w", r.codec.IDColumn, id, domain.ErrNotFound)
	}

	record, err := r.codec.Decode(table.Rows[idx])
	if err != nil {
		logger.Warn("%s: row %d does not parse: %v", r.ws.Name(), idx+headerRows+1, err)
		return nil, fmt.Errorf("%s %d: %w: %v", r.codec.IDColumn, id, domain.ErrInvalidInput, err)
	}
	return &record, nil
}

// GetAll returns every parseable record, optionally restricted to a parent.
func (r *Repository[T]) GetAll(ctx context.Context, parentID *int) ([]T, error) {
	if parentID != nil && r.codec.ParentColumn == "" {
		return nil, fmt.Errorf("%w: %s records have no parent", domain.ErrInvalidInput, r.ws.Name())
	}

	table, err := r.read(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(table.Rows))
	for i, row := range table.Rows {
		if parentID != nil && !matchID(row, r.codec.ParentColumn, *parentID) {
			continue
		}
		record, err := r.codec.Decode(row)
		if err != nil {
			logger.Warn("%s: skipping row %d: %v", r.ws.Name(), i+headerRows+1, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// DeleteOneByID removes the record's row.
func (r *Repository[T]) DeleteOneByID(ctx context.Context, id int) error {
	table, err := r.read(ctx)
	if err != nil {
		return err
	}

	idx := r.locate(table, id)
	if idx < 0 {
		logger.Warn("%s: cannot delete %s %d: not found", r.ws.Name(), r.codec.IDColumn, id)
		return fmt.Errorf("%s %d: %w", r.codec.IDColumn, id, domain.ErrNotFound)
	}

	if err := r.ws.DeleteRow(ctx, storeRow(idx)); err != nil {
		logger.Warn("%s: delete %s %d failed: %v", r.ws.Name(), r.codec.IDColumn, id, err)
		return fmt.Errorf("delete %s %d: %w", r.codec.IDColumn, id, err)
	}
	logger.Info("%s: deleted %s %d (row %d)", r.ws.Name(), r.codec.IDColumn, id, storeRow(idx))
	return nil
}

// UpdateOneByID writes one field of one record.
func (r *Repository[T]) UpdateOneByID(ctx context.Context, id int, field string, value any) error {
	table, err := r.read(ctx)
	if err != nil {
		return err
	}

	col := table.ColumnIndex(field)
	if col < 0 {
		logger.Warn("%s: unknown field %q", r.ws.Name(), field)
		return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, field)
	}

	idx := r.locate(table, id)
	if idx < 0 {
		logger.Warn("%s: cannot update %s %d: not found", r.ws.Name(), r.codec.IDColumn, id)
		return fmt.Errorf("%s %d: %w", r.codec.IDColumn, id, domain.ErrNotFound)
	}

	if err := r.ws.UpdateCell(ctx, storeRow(idx), col+1, Stringify(value)); err != nil {
		logger.Warn("%s: update %s of %s %d failed: %v", r.ws.Name(), field, r.codec.IDColumn, id, err)
		return fmt.Errorf("update %s of %s %d: %w", field, r.codec.IDColumn, id, err)
	}
	return nil
}

// Append adds a record as a new last row. Values are laid out in header
// order; columns the sheet lacks are dropped.
func (r *Repository[T]) Append(ctx context.Context, record T) error {
	table, err := r.read(ctx)
	if err != nil {
		return err
	}
	if len(table.Header) == 0 {
		return fmt.Errorf("%w: %s has no header row", domain.ErrInvalidInput, r.ws.Name())
	}

	cells := r.codec.Encode(record)
	values := make([]string, len(table.Header))
	for i, h := range table.Header {
		values[i] = cells[h]
	}
	for name := range cells {
		if table.ColumnIndex(name) < 0 {
			logger.Debug("%s: no column %q, value dropped", r.ws.Name(), name)
		}
	}

	if err := r.ws.AppendRow(ctx, values); err != nil {
		return fmt.Errorf("append to %s: %w", r.ws.Name(), err)
	}
	return nil
}

// storeRow converts a 0-based data index to a 1-based sheet row.
func storeRow(idx int) int {
	return idx + headerRows + 1
}

// coerceID reads an integer column, or missingID.
func coerceID(row driven.Row, column string) int {
	raw, ok := row[column]
	if !ok {
		return missingID
	}
	v, ok := domain.ParseInt(raw)
	if !ok {
		return missingID
	}
	return v
}

// matchID reports whether the column holds id. A missing or non-numeric
// cell never matches.
func matchID(row driven.Row, column string, id int) bool {
	v := coerceID(row, column)
	return v != missingID && v == id
}
