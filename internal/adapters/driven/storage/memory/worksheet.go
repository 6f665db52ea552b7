package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
)

// Ensure Worksheet implements the interface.
var _ driven.Worksheet = (*Worksheet)(nil)

// Op names a worksheet operation for fault injection.
type Op string

// Worksheet operations.
const (
	OpReadAll    Op = "read_all"
	OpUpdateCell Op = "update_cell"
	OpDeleteRow  Op = "delete_row"
	OpAppendRow  Op = "append_row"
)

// Worksheet is an in-memory implementation of driven.Worksheet for testing.
// Cells are kept as a grid whose first row is the header, mirroring the
// layout of a real sheet.
type Worksheet struct {
	mu       sync.Mutex
	name     string
	disabled bool
	grid     [][]string

	// failures maps an operation to the error it returns, after the given
	// number of successful calls.
	failures map[Op]fault
	calls    map[Op]int

	// beforeUpdate runs before each UpdateCell outside the lock.
	beforeUpdate func(row, col int, value string)
}

type fault struct {
	after int
	err   error
}

// NewWorksheet creates a worksheet holding header and rows.
func NewWorksheet(name string, header []string, rows ...[]string) *Worksheet {
	grid := make([][]string, 0, len(rows)+1)
	grid = append(grid, append([]string(nil), header...))
	for _, r := range rows {
		grid = append(grid, append([]string(nil), r...))
	}
	return &Worksheet{
		name:     name,
		grid:     grid,
		failures: make(map[Op]fault),
		calls:    make(map[Op]int),
	}
}

// NewDisabledWorksheet creates a worksheet whose connection failed.
func NewDisabledWorksheet(name string) *Worksheet {
	return &Worksheet{
		name:     name,
		disabled: true,
		failures: make(map[Op]fault),
		calls:    make(map[Op]int),
	}
}

// FailOn makes op return err once it has succeeded after times.
func (w *Worksheet) FailOn(op Op, after int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.failures[op] = fault{after: after, err: err}
}

// ClearFailures removes every injected failure.
func (w *Worksheet) ClearFailures() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.failures = make(map[Op]fault)
}

// OnUpdate registers a hook called before each cell update.
func (w *Worksheet) OnUpdate(fn func(row, col int, value string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.beforeUpdate = fn
}

// Calls returns how many times op was invoked, failures included.
func (w *Worksheet) Calls(op Op) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls[op]
}

// Cell returns the value at 1-based store coordinates.
func (w *Worksheet) Cell(row, col int) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if row < 1 || row > len(w.grid) || col < 1 || col > len(w.grid[row-1]) {
		return ""
	}
	return w.grid[row-1][col-1]
}

// RowCount returns the number of data rows.
func (w *Worksheet) RowCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.grid) == 0 {
		return 0
	}
	return len(w.grid) - 1
}

// Name identifies the worksheet.
func (w *Worksheet) Name() string {
	return w.name
}

// Enabled reports whether the worksheet is usable.
func (w *Worksheet) Enabled() bool {
	return !w.disabled
}

// check records a call and returns the injected failure, if due.
// Caller must hold the lock.
func (w *Worksheet) check(op Op) error {
	w.calls[op]++
	if w.disabled {
		return fmt.Errorf("worksheet %s is disabled: %w", w.name, domain.ErrStoreUnavailable)
	}
	if f, ok := w.failures[op]; ok && w.calls[op] > f.after {
		return f.err
	}
	return nil
}

// ReadAll returns a copy of the header and rows.
func (w *Worksheet) ReadAll(_ context.Context) (*driven.Table, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(OpReadAll); err != nil {
		return nil, err
	}

	table := &driven.Table{Rows: make([]driven.Row, 0)}
	if len(w.grid) == 0 {
		return table, nil
	}
	table.Header = append([]string(nil), w.grid[0]...)
	for _, cells := range w.grid[1:] {
		row := make(driven.Row, len(table.Header))
		for i, h := range table.Header {
			if i < len(cells) {
				row[h] = cells[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// UpdateCell overwrites one cell, growing the row if needed.
func (w *Worksheet) UpdateCell(_ context.Context, row, col int, value string) error {
	w.mu.Lock()
	hook := w.beforeUpdate
	w.mu.Unlock()
	if hook != nil {
		hook(row, col, value)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(OpUpdateCell); err != nil {
		return err
	}
	if row < 1 || col < 1 {
		return fmt.Errorf("cell (%d,%d) out of range: %w", row, col, domain.ErrInvalidInput)
	}
	for len(w.grid) < row {
		w.grid = append(w.grid, nil)
	}
	for len(w.grid[row-1]) < col {
		w.grid[row-1] = append(w.grid[row-1], "")
	}
	w.grid[row-1][col-1] = value
	return nil
}

// DeleteRow removes one row; following rows shift up.
func (w *Worksheet) DeleteRow(_ context.Context, row int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(OpDeleteRow); err != nil {
		return err
	}
	if row < 1 || row > len(w.grid) {
		return fmt.Errorf("row %d out of range: %w", row, domain.ErrInvalidInput)
	}
	w.grid = append(w.grid[:row-1], w.grid[row:]...)
	return nil
}

// AppendRow adds a row after the last one.
func (w *Worksheet) AppendRow(_ context.Context, values []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(OpAppendRow); err != nil {
		return err
	}
	w.grid = append(w.grid, append([]string(nil), values...))
	return nil
}
