package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// NewServiceAccountTokenSource reads a service-account key file and returns
// a token source scoped to read and write spreadsheets.
func NewServiceAccountTokenSource(ctx context.Context, credentialsFile string) (oauth2.TokenSource, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("%w: no credentials file configured", domain.ErrConfiguration)
	}
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read credentials file: %v", domain.ErrConfiguration, err)
	}
	cfg, err := googleoauth.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse credentials file: %v", domain.ErrConfiguration, err)
	}
	return cfg.TokenSource(ctx), nil
}

// NewSheetsService creates a Google Sheets API service using the provided TokenSource.
// Extra options are appended, e.g. an endpoint override in tests.
func NewSheetsService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*sheets.Service, error) {
	all := append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	svc, err := sheets.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}
