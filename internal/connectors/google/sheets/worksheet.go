package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/EduuF/sinaliza-libras/internal/connectors/google"
	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// Ensure the worksheets implement the interface.
var (
	_ driven.Worksheet = (*Worksheet)(nil)
	_ driven.Worksheet = (*disabledWorksheet)(nil)
	_ driven.Worksheet = (*pendingWorksheet)(nil)
)

// Values are written as given: user-supplied text such as video URLs is
// never parsed as a formula.
const valueInputOption = "RAW"

// Worksheet is one live tab of a Google spreadsheet.
type Worksheet struct {
	svc           *sheetsapi.Service
	limiter       *google.RateLimiter
	spreadsheetID string
	tab           string
	sheetID       int64
}

// Name identifies the worksheet.
func (w *Worksheet) Name() string {
	return w.tab
}

// Enabled is always true for a connected worksheet.
func (w *Worksheet) Enabled() bool {
	return true
}

// ReadAll reads the header and every data row. Blank rows in the middle of
// the sheet are kept so row positions stay exact.
func (w *Worksheet) ReadAll(ctx context.Context) (*driven.Table, error) {
	if err := w.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, tabRange(w.tab, "")).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, w.fail("read", err)
	}

	table := &driven.Table{Rows: make([]driven.Row, 0, len(resp.Values))}
	if len(resp.Values) == 0 {
		return table, nil
	}
	table.Header = make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		table.Header[i] = strings.TrimSpace(fmt.Sprint(cell))
	}
	for _, cells := range resp.Values[1:] {
		row := make(driven.Row, len(table.Header))
		for i, cell := range cells {
			if i >= len(table.Header) || table.Header[i] == "" {
				continue
			}
			row[table.Header[i]] = fmt.Sprint(cell)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// UpdateCell overwrites one cell.
func (w *Worksheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("%w: cell (%d,%d) out of range", domain.ErrInvalidInput, row, col)
	}
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}
	_, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, tabRange(w.tab, CellRef(row, col)), vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return w.fail("update "+CellRef(row, col), err)
	}
	logger.Debug("%s: wrote %s", w.tab, CellRef(row, col))
	return nil
}

// DeleteRow removes one row.
func (w *Worksheet) DeleteRow(ctx context.Context, row int) error {
	if row < 1 {
		return fmt.Errorf("%w: row %d out of range", domain.ErrInvalidInput, row)
	}
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    w.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
					// Zero is a valid sheet id and start index.
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}
	if _, err := w.svc.Spreadsheets.BatchUpdate(w.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return w.fail(fmt.Sprintf("delete row %d", row), err)
	}
	return nil
}

// AppendRow inserts a row after the last one.
func (w *Worksheet) AppendRow(ctx context.Context, values []string) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{cells}}
	_, err := w.svc.Spreadsheets.Values.Append(w.spreadsheetID, tabRange(w.tab, "A1"), vr).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return w.fail("append", err)
	}
	return nil
}

// fail maps an API error and starts a backoff after a 429.
func (w *Worksheet) fail(op string, err error) error {
	if google.IsRateLimited(err) {
		w.limiter.RecordRateLimitError(google.RetryAfter(err))
	}
	return fmt.Errorf("%s %s: %w", w.tab, op, google.WrapError(err))
}

// disabledWorksheet stands in for a tab that could not be opened.
type disabledWorksheet struct {
	name  string
	cause error
}

func (d *disabledWorksheet) Name() string {
	return d.name
}

func (d *disabledWorksheet) Enabled() bool {
	return false
}

func (d *disabledWorksheet) err() error {
	return unavailable(d.name, d.cause)
}

func (d *disabledWorksheet) ReadAll(context.Context) (*driven.Table, error) {
	return nil, d.err()
}

func (d *disabledWorksheet) UpdateCell(context.Context, int, int, string) error {
	return d.err()
}

func (d *disabledWorksheet) DeleteRow(context.Context, int) error {
	return d.err()
}

func (d *disabledWorksheet) AppendRow(context.Context, []string) error {
	return d.err()
}

func unavailable(name string, cause error) error {
	return fmt.Errorf("worksheet %s is disabled: %w (%v)", name, domain.ErrStoreUnavailable, cause)
}

// pendingWorksheet stands in for a tab whose spreadsheet could not be opened
// yet. Each operation retries the open; the first success is kept.
type pendingWorksheet struct {
	gw   *Gateway
	id   string
	name string

	mu sync.Mutex
	ws *Worksheet
}

func (p *pendingWorksheet) Name() string {
	return p.name
}

// Enabled reports whether the spreadsheet has been opened.
func (p *pendingWorksheet) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ws != nil
}

func (p *pendingWorksheet) resolve(ctx context.Context) (*Worksheet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ws != nil {
		return p.ws, nil
	}
	ws, err := p.gw.open(ctx, p.id, p.name)
	if err != nil {
		logger.Warn("reconnect to worksheet %q: %v", p.name, err)
		return nil, unavailable(p.name, err)
	}
	logger.Info("connected to worksheet %q (sheet id %d)", p.name, ws.sheetID)
	p.ws = ws
	return ws, nil
}

func (p *pendingWorksheet) ReadAll(ctx context.Context) (*driven.Table, error) {
	ws, err := p.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return ws.ReadAll(ctx)
}

func (p *pendingWorksheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	ws, err := p.resolve(ctx)
	if err != nil {
		return err
	}
	return ws.UpdateCell(ctx, row, col, value)
}

func (p *pendingWorksheet) DeleteRow(ctx context.Context, row int) error {
	ws, err := p.resolve(ctx)
	if err != nil {
		return err
	}
	return ws.DeleteRow(ctx, row)
}

func (p *pendingWorksheet) AppendRow(ctx context.Context, values []string) error {
	ws, err := p.resolve(ctx)
	if err != nil {
		return err
	}
	return ws.AppendRow(ctx, values)
}
