package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/EduuF/sinaliza-libras/internal/connectors/google"
	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// Ensure Gateway implements the interface.
var _ driven.WorksheetGateway = (*Gateway)(nil)

// Gateway opens worksheets through one shared Sheets API client.
// The client is safe for concurrent use.
type Gateway struct {
	svc     *sheetsapi.Service
	limiter *google.RateLimiter

	// initErr is set when the client could not be created. Every worksheet
	// is then disabled.
	initErr error
}

// NewGateway wraps an existing Sheets service.
func NewGateway(svc *sheetsapi.Service, limiter *google.RateLimiter) *Gateway {
	if limiter == nil {
		limiter = google.NewRateLimiter(google.DefaultSheetsRateLimit)
	}
	return &Gateway{svc: svc, limiter: limiter}
}

// NewGatewayFromCredentials builds the Sheets client from a service-account
// key file. It never fails: a bad key yields a gateway whose worksheets are
// all disabled.
func NewGatewayFromCredentials(ctx context.Context, credentialsFile string, rl google.RateLimitConfig, opts ...option.ClientOption) *Gateway {
	limiter := google.NewRateLimiter(rl)

	ts, err := google.NewServiceAccountTokenSource(ctx, credentialsFile)
	if err != nil {
		logger.Error("sheets credentials: %v", err)
		return &Gateway{limiter: limiter, initErr: err}
	}
	svc, err := google.NewSheetsService(ctx, ts, opts...)
	if err != nil {
		logger.Error("sheets client: %v", err)
		return &Gateway{limiter: limiter, initErr: fmt.Errorf("%w: %v", domain.ErrConfiguration, err)}
	}
	return NewGateway(svc, limiter)
}

// Connect opens the tab named by loc. Any failure is logged and yields a
// disabled worksheet. A bad client or locator disables it for good; a
// failed spreadsheet open is retried by the next worksheet operation.
func (g *Gateway) Connect(ctx context.Context, loc domain.SheetLocator) driven.Worksheet {
	id, err := g.locate(loc)
	if err != nil {
		logger.Error("connect to worksheet %q: %v", loc.TabName, err)
		return &disabledWorksheet{name: loc.TabName, cause: err}
	}
	ws, err := g.open(ctx, id, loc.TabName)
	if err != nil {
		logger.Error("connect to worksheet %q: %v (will retry)", loc.TabName, err)
		return &pendingWorksheet{gw: g, id: id, name: loc.TabName}
	}
	logger.Info("connected to worksheet %q (sheet id %d)", loc.TabName, ws.sheetID)
	return ws
}

// locate validates everything that does not need the API and returns the
// spreadsheet id.
func (g *Gateway) locate(loc domain.SheetLocator) (string, error) {
	if g.initErr != nil {
		return "", g.initErr
	}
	if g.svc == nil {
		return "", fmt.Errorf("%w: no sheets client", domain.ErrConfiguration)
	}
	if !loc.IsConfigured() {
		return "", fmt.Errorf("%w: spreadsheet url and tab name are required", domain.ErrConfiguration)
	}
	return SpreadsheetID(loc.URL)
}

// open fetches the spreadsheet metadata and resolves the tab's sheet id.
func (g *Gateway) open(ctx context.Context, id, tab string) (*Worksheet, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	doc, err := g.svc.Spreadsheets.Get(id).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		if google.IsRateLimited(err) {
			g.limiter.RecordRateLimitError(google.RetryAfter(err))
		}
		return nil, fmt.Errorf("open spreadsheet %s: %w", id, google.WrapError(err))
	}

	for _, sh := range doc.Sheets {
		if sh.Properties != nil && sh.Properties.Title == tab {
			return &Worksheet{
				svc:           g.svc,
				limiter:       g.limiter,
				spreadsheetID: id,
				tab:           tab,
				sheetID:       sh.Properties.SheetId,
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: spreadsheet %s has no tab %q", domain.ErrConfiguration, id, tab)
}
