package driven

import (
	"context"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// Row is one data row keyed by header column.
// Cells missing from the sheet are absent from the map.
type Row map[string]string

// Table is the full content of a worksheet at the time it was read.
// Rows[i] lives at store row i+2: row 1 holds the header.
type Table struct {
	Header []string
	Rows   []Row
}

// ColumnIndex returns the 0-based header position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Worksheet is one tab of a remote spreadsheet.
// Coordinates are 1-based store coordinates.
type Worksheet interface {
	// Name identifies the worksheet in logs.
	Name() string

	// Enabled is false while the worksheet has no open connection. An
	// operation on a disabled worksheet returns domain.ErrStoreUnavailable
	// unless the worksheet manages to reconnect first.
	Enabled() bool

	// ReadAll reads the header and every data row.
	ReadAll(ctx context.Context) (*Table, error)

	// UpdateCell overwrites one cell.
	UpdateCell(ctx context.Context, row, col int, value string) error

	// DeleteRow removes one row; rows below it shift up.
	DeleteRow(ctx context.Context, row int) error

	// AppendRow writes values after the last row, in header order.
	AppendRow(ctx context.Context, values []string) error
}

// WorksheetGateway opens worksheets.
type WorksheetGateway interface {
	// Connect never fails: on any error it logs a diagnostic and returns
	// a disabled worksheet. Worksheets disabled by a transient error
	// retry on their next operation.
	Connect(ctx context.Context, loc domain.SheetLocator) Worksheet
}
