package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/EduuF/sinaliza-libras/internal/connectors/google"
	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

const testDocURL = "https://docs.google.com/spreadsheets/d/doc1/edit"

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

// fakeSheets serves the subset of the Sheets v4 API the worksheet uses.
type fakeSheets struct {
	mu       sync.Mutex
	tabs     map[string]int64
	values   [][]any
	requests []recorded

	// failStatus, when set, fails every call except metadata.
	failStatus int
	retryAfter string
	// metaStatus, when set, fails the metadata call.
	metaStatus int
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&rec.body)
	}
	f.requests = append(f.requests, rec)

	isMeta := r.Method == http.MethodGet && r.URL.Path == "/v4/spreadsheets/doc1"
	if isMeta && f.metaStatus != 0 {
		writeError(w, f.metaStatus, "")
		return
	}
	if !isMeta && f.failStatus != 0 {
		writeError(w, f.failStatus, f.retryAfter)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case isMeta:
		sheets := make([]map[string]any, 0, len(f.tabs))
		for title, id := range f.tabs {
			sheets = append(sheets, map[string]any{"properties": map[string]any{"sheetId": id, "title": title}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"sheets": sheets})
	case strings.HasSuffix(r.URL.Path, ":batchUpdate"):
		_ = json.NewEncoder(w).Encode(map[string]any{"spreadsheetId": "doc1"})
	case strings.HasSuffix(r.URL.Path, ":append"):
		if vals, ok := rec.body["values"].([]any); ok {
			for _, row := range vals {
				f.values = append(f.values, row.([]any))
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"spreadsheetId": "doc1"})
	case strings.Contains(r.URL.Path, "/values/") && r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]any{"range": "x", "majorDimension": "ROWS", "values": f.values})
	case strings.Contains(r.URL.Path, "/values/") && r.Method == http.MethodPut:
		_ = json.NewEncoder(w).Encode(map[string]any{"updatedCells": 1})
	default:
		http.NotFound(w, r)
	}
}

func writeError(w http.ResponseWriter, status int, retryAfter string) {
	if retryAfter != "" {
		w.Header().Set("Retry-After", retryAfter)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": status, "message": http.StatusText(status)},
	})
}

func (f *fakeSheets) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeSheets) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newFake() *fakeSheets {
	return &fakeSheets{
		tabs: map[string]int64{"trechos": 0, "sites": 42},
		values: [][]any{
			{"trecho_id", "conteudo", "interprete_id"},
			{"1", "um"},
			{},
			{"3", "tres", "5"},
		},
	}
}

func newTestGateway(t *testing.T, fake *fakeSheets) *Gateway {
	t.Helper()
	var buf strings.Builder
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return NewGateway(svc, google.NewRateLimiter(google.RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 100}))
}

func TestGateway_Connect(t *testing.T) {
	fake := newFake()
	gw := newTestGateway(t, fake)

	ws := gw.Connect(context.Background(), domain.SheetLocator{URL: testDocURL, TabName: "sites"})
	require.True(t, ws.Enabled())
	assert.Equal(t, "sites", ws.Name())
	assert.Equal(t, int64(42), ws.(*Worksheet).sheetID)
	assert.Contains(t, fake.last().query, "fields=sheets.properties")
}

func TestGateway_Connect_Disabled(t *testing.T) {
	tests := []struct {
		name string
		loc  domain.SheetLocator
	}{
		{"missing url", domain.SheetLocator{TabName: "trechos"}},
		{"missing tab", domain.SheetLocator{URL: testDocURL}},
		{"not a spreadsheet url", domain.SheetLocator{URL: "https://example.com", TabName: "trechos"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			gw := newTestGateway(t, fake)
			ctx := context.Background()

			ws := gw.Connect(ctx, tt.loc)
			require.NotNil(t, ws)
			assert.False(t, ws.Enabled())

			_, err := ws.ReadAll(ctx)
			assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
			assert.True(t, errors.Is(ws.UpdateCell(ctx, 2, 1, "x"), domain.ErrStoreUnavailable))
			assert.True(t, errors.Is(ws.DeleteRow(ctx, 2), domain.ErrStoreUnavailable))
			assert.True(t, errors.Is(ws.AppendRow(ctx, []string{"x"}), domain.ErrStoreUnavailable))
			assert.Zero(t, fake.count(), "disabled worksheet must not call the API")
		})
	}
}

func TestGateway_Connect_OpenFailureRetries(t *testing.T) {
	tests := []struct {
		name string
		tab  string
		meta int
	}{
		{"unknown tab", "renamed", 0},
		{"permission denied", "trechos", http.StatusForbidden},
		{"document gone", "trechos", http.StatusNotFound},
		{"outage", "trechos", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			fake.metaStatus = tt.meta
			gw := newTestGateway(t, fake)
			ctx := context.Background()

			ws := gw.Connect(ctx, domain.SheetLocator{URL: testDocURL, TabName: tt.tab})
			require.NotNil(t, ws)
			assert.False(t, ws.Enabled())
			assert.Equal(t, 1, fake.count())

			_, err := ws.ReadAll(ctx)
			assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
			assert.True(t, errors.Is(ws.AppendRow(ctx, []string{"x"}), domain.ErrStoreUnavailable))
			assert.Equal(t, 3, fake.count(), "each operation retries the metadata call")
			assert.Equal(t, "/v4/spreadsheets/doc1", fake.last().path)
			assert.False(t, ws.Enabled())
		})
	}
}

func TestGateway_Connect_RecoversAfterOutage(t *testing.T) {
	fake := newFake()
	fake.metaStatus = http.StatusServiceUnavailable
	gw := newTestGateway(t, fake)
	ctx := context.Background()

	ws := gw.Connect(ctx, domain.SheetLocator{URL: testDocURL, TabName: "trechos"})
	require.False(t, ws.Enabled())

	fake.mu.Lock()
	fake.metaStatus = 0
	fake.mu.Unlock()

	table, err := ws.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"trecho_id", "conteudo", "interprete_id"}, table.Header)
	assert.True(t, ws.Enabled())

	// The open worksheet is kept: later calls skip the metadata lookup.
	before := fake.count()
	require.NoError(t, ws.AppendRow(ctx, []string{"4", "quatro"}))
	assert.Equal(t, before+1, fake.count())
	assert.True(t, strings.HasSuffix(fake.last().path, ":append"))
}

func TestNewGatewayFromCredentials_MissingFile(t *testing.T) {
	var buf strings.Builder
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	gw := NewGatewayFromCredentials(context.Background(), filepath.Join(t.TempDir(), "missing.json"), google.DefaultSheetsRateLimit)
	ws := gw.Connect(context.Background(), domain.SheetLocator{URL: testDocURL, TabName: "trechos"})

	assert.False(t, ws.Enabled())
	_, err := ws.ReadAll(context.Background())
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.Contains(t, buf.String(), "[ERROR]")
}

func TestNewGatewayFromCredentials_InvalidFile(t *testing.T) {
	var buf strings.Builder
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	gw := NewGatewayFromCredentials(context.Background(), path, google.DefaultSheetsRateLimit)
	assert.False(t, gw.Connect(context.Background(), domain.SheetLocator{URL: testDocURL, TabName: "trechos"}).Enabled())
	assert.True(t, errors.Is(gw.initErr, domain.ErrConfiguration))
}

func connectTrechos(t *testing.T, fake *fakeSheets) *Worksheet {
	t.Helper()
	ws := newTestGateway(t, fake).Connect(context.Background(), domain.SheetLocator{URL: testDocURL, TabName: "trechos"})
	require.True(t, ws.Enabled())
	return ws.(*Worksheet)
}

func TestWorksheet_ReadAll(t *testing.T) {
	fake := newFake()
	ws := connectTrechos(t, fake)

	table, err := ws.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"trecho_id", "conteudo", "interprete_id"}, table.Header)
	require.Len(t, table.Rows, 3, "blank rows keep their position")
	assert.Equal(t, "um", table.Rows[0]["conteudo"])
	_, ok := table.Rows[0]["interprete_id"]
	assert.False(t, ok)
	assert.Empty(t, table.Rows[1])
	assert.Equal(t, "5", table.Rows[2]["interprete_id"])

	req := fake.last()
	assert.Equal(t, http.MethodGet, req.method)
	assert.Contains(t, req.path, "/values/'trechos'")
	assert.Contains(t, req.query, "valueRenderOption=FORMATTED_VALUE")
}

func TestWorksheet_ReadAll_Empty(t *testing.T) {
	fake := newFake()
	fake.values = nil
	ws := connectTrechos(t, fake)

	table, err := ws.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, table.Header)
	assert.NotNil(t, table.Rows)
	assert.Empty(t, table.Rows)
}

func TestWorksheet_UpdateCell(t *testing.T) {
	fake := newFake()
	ws := connectTrechos(t, fake)

	require.NoError(t, ws.UpdateCell(context.Background(), 3, 5, "http://x/y.mp4"))

	req := fake.last()
	assert.Equal(t, http.MethodPut, req.method)
	assert.Contains(t, req.path, "'trechos'!E3")
	assert.Contains(t, req.query, "valueInputOption=RAW")
	assert.Equal(t, []any{[]any{"http://x/y.mp4"}}, req.body["values"])
}

func TestWorksheet_UpdateCell_OutOfRange(t *testing.T) {
	fake := newFake()
	ws := connectTrechos(t, fake)
	before := fake.count()

	err := ws.UpdateCell(context.Background(), 0, 1, "x")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, before, fake.count())
}

func TestWorksheet_DeleteRow(t *testing.T) {
	fake := newFake()
	ws := connectTrechos(t, fake)

	require.NoError(t, ws.DeleteRow(context.Background(), 3))

	req := fake.last()
	assert.Equal(t, http.MethodPost, req.method)
	assert.True(t, strings.HasSuffix(req.path, "doc1:batchUpdate"))

	requests := req.body["requests"].([]any)
	require.Len(t, requests, 1)
	rng := requests[0].(map[string]any)["deleteDimension"].(map[string]any)["range"].(map[string]any)
	assert.Equal(t, float64(0), rng["sheetId"], "sheet id 0 must be sent")
	assert.Equal(t, "ROWS", rng["dimension"])
	assert.Equal(t, float64(2), rng["startIndex"])
	assert.Equal(t, float64(3), rng["endIndex"])
}

func TestWorksheet_AppendRow(t *testing.T) {
	fake := newFake()
	ws := connectTrechos(t, fake)

	require.NoError(t, ws.AppendRow(context.Background(), []string{"4", "quatro", ""}))

	req := fake.last()
	assert.True(t, strings.HasSuffix(req.path, ":append"))
	assert.Contains(t, req.query, "insertDataOption=INSERT_ROWS")
	assert.Contains(t, req.query, "valueInputOption=RAW")

	table, err := ws.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Rows, 4)
	assert.Equal(t, "quatro", table.Rows[3]["conteudo"])
}

func TestWorksheet_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorised", http.StatusUnauthorized, google.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, google.ErrForbidden},
		{"server error", http.StatusInternalServerError, domain.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			ws := connectTrechos(t, fake)
			fake.mu.Lock()
			fake.failStatus = tt.status
			fake.mu.Unlock()

			_, err := ws.ReadAll(context.Background())
			assert.True(t, errors.Is(err, tt.want))
			assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
		})
	}
}

func TestWorksheet_RateLimited(t *testing.T) {
	fake := newFake()
	ws := connectTrechos(t, fake)
	fake.mu.Lock()
	fake.failStatus = http.StatusTooManyRequests
	fake.retryAfter = "30"
	fake.mu.Unlock()

	err := ws.UpdateCell(context.Background(), 2, 2, "x")
	assert.True(t, errors.Is(err, domain.ErrRateLimited))
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.True(t, ws.limiter.BackingOff())
}
