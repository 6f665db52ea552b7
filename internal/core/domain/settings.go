package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Entity identifies one of the three spreadsheets.
type Entity string

// Entities backed by a worksheet.
const (
	EntitySite       Entity = "site"
	EntityTrecho     Entity = "trecho"
	EntityInterprete Entity = "interprete"
)

// AllEntities returns the entities in dependency order.
func AllEntities() []Entity {
	return []Entity{EntitySite, EntityTrecho, EntityInterprete}
}

// SheetLocator identifies one tab of a Google spreadsheet.
type SheetLocator struct {
	// URL is the spreadsheet address, e.g. https://docs.google.com/spreadsheets/d/<id>/edit.
	URL string
	// TabName is the worksheet (tab) title.
	TabName string
}

// IsConfigured returns true if both the URL and the tab are set.
func (l SheetLocator) IsConfigured() bool {
	return strings.TrimSpace(l.URL) != "" && strings.TrimSpace(l.TabName) != ""
}

// SheetsSettings configures the spreadsheet store.
type SheetsSettings struct {
	// CredentialsFile is the path to a service-account JSON key.
	CredentialsFile string

	Site       SheetLocator
	Trecho     SheetLocator
	Interprete SheetLocator

	// RequestsPerSecond throttles calls to the Sheets API.
	RequestsPerSecond float64
	// Burst is the token bucket size for the throttle.
	Burst int
}

// Locator returns the locator for an entity.
func (s SheetsSettings) Locator(e Entity) SheetLocator {
	switch e {
	case EntitySite:
		return s.Site
	case EntityTrecho:
		return s.Trecho
	case EntityInterprete:
		return s.Interprete
	default:
		return SheetLocator{}
	}
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Host string
	Port int

	// RootPath is an optional path prefix the API is mounted under.
	// "localhost" is treated as empty for local development.
	RootPath string

	// AllowedOrigins lists CORS origins.
	AllowedOrigins []string
}

// Addr returns host:port.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// NormalisedRootPath returns the root path as a mux prefix ("" or "/x").
func (s ServerSettings) NormalisedRootPath() string {
	p := strings.TrimSpace(s.RootPath)
	if p == "" || strings.EqualFold(p, "localhost") || p == "/" {
		return ""
	}
	return "/" + strings.Trim(p, "/")
}

// SnapshotSettings configures the S3-compatible bucket holding snapshot images.
type SnapshotSettings struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool

	// URLExpirySeconds is the lifetime of presigned snapshot links.
	URLExpirySeconds int
}

// IsConfigured returns true if the snapshot store can be used.
func (s SnapshotSettings) IsConfigured() bool {
	return s.Endpoint != "" && s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}

// AppSettings is the complete runtime configuration.
// It is built once at process start and passed to each component.
type AppSettings struct {
	Sheets    SheetsSettings
	Server    ServerSettings
	Snapshots SnapshotSettings

	// DataDir holds the local reconciliation database.
	DataDir string
}

// DefaultAppSettings returns settings with defaults applied.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Sheets: SheetsSettings{
			RequestsPerSecond: 1.0, // Sheets allows 60 requests/min/user
			Burst:             5,
		},
		Server: ServerSettings{
			Host:           "localhost",
			Port:           8000,
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Snapshots: SnapshotSettings{
			Bucket:           "snapshots",
			Region:           "us-east-1",
			URLExpirySeconds: 900,
		},
	}
}

// Validate checks the settings needed to serve the API.
// Missing sheet configuration is reported but is not fatal to the process:
// the affected worksheets start disabled.
func (s *AppSettings) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Sheets.CredentialsFile) == "" {
		errs = append(errs, fmt.Errorf("%w: sheets credentials file is not set", ErrConfiguration))
	}
	for _, e := range AllEntities() {
		if !s.Sheets.Locator(e).IsConfigured() {
			errs = append(errs, fmt.Errorf("%w: %s sheet url or tab name is not set", ErrConfiguration, e))
		}
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: server port %d out of range", ErrConfiguration, s.Server.Port))
	}
	if s.Sheets.RequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("%w: sheets requests_per_second must be positive", ErrConfiguration))
	}
	return errors.Join(errs...)
}
