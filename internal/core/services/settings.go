package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeySheetsCredentials    = "sheets.credentials_file"
	KeySheetsSiteURL        = "sheets.site.url"
	KeySheetsSiteTab        = "sheets.site.tab_name"
	KeySheetsTrechoURL      = "sheets.trecho.url"
	KeySheetsTrechoTab      = "sheets.trecho.tab_name"
	KeySheetsInterpreteURL  = "sheets.interprete.url"
	KeySheetsInterpreteTab  = "sheets.interprete.tab_name"
	KeySheetsRPS            = "sheets.requests_per_second"
	KeySheetsBurst          = "sheets.burst"
	KeyServerHost           = "server.host"
	KeyServerPort           = "server.port"
	KeyServerRootPath       = "server.root_path"
	KeyServerAllowedOrigins = "server.allowed_origins"
	KeySnapshotsEndpoint    = "snapshots.endpoint"
	KeySnapshotsAccessKey   = "snapshots.access_key"
	KeySnapshotsSecretKey   = "snapshots.secret_key"
	KeySnapshotsBucket      = "snapshots.bucket"
	KeySnapshotsRegion      = "snapshots.region"
	KeySnapshotsUseSSL      = "snapshots.use_ssl"
	KeySnapshotsURLExpiry   = "snapshots.url_expiry_seconds"
	KeyStorageDataDir       = "storage.data_dir"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindBool
	kindList
)

var knownKeys = map[string]keyKind{
	KeySheetsCredentials:    kindString,
	KeySheetsSiteURL:        kindString,
	KeySheetsSiteTab:        kindString,
	KeySheetsTrechoURL:      kindString,
	KeySheetsTrechoTab:      kindString,
	KeySheetsInterpreteURL:  kindString,
	KeySheetsInterpreteTab:  kindString,
	KeySheetsRPS:            kindFloat,
	KeySheetsBurst:          kindInt,
	KeyServerHost:           kindString,
	KeyServerPort:           kindInt,
	KeyServerRootPath:       kindString,
	KeyServerAllowedOrigins: kindList,
	KeySnapshotsEndpoint:    kindString,
	KeySnapshotsAccessKey:   kindString,
	KeySnapshotsSecretKey:   kindString,
	KeySnapshotsBucket:      kindString,
	KeySnapshotsRegion:      kindString,
	KeySnapshotsUseSSL:      kindBool,
	KeySnapshotsURLExpiry:   kindInt,
	KeyStorageDataDir:       kindString,
}

// KnownKeys returns every settings key, sorted.
func KnownKeys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService assembles application settings from a config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get builds settings from defaults overlaid with stored values.
// The result is not validated; call AppSettings.Validate.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &d, nil
	}

	settings := &domain.AppSettings{
		Sheets: domain.SheetsSettings{
			CredentialsFile: s.getString(KeySheetsCredentials, d.Sheets.CredentialsFile),
			Site: domain.SheetLocator{
				URL:     s.getString(KeySheetsSiteURL, ""),
				TabName: s.getString(KeySheetsSiteTab, ""),
			},
			Trecho: domain.SheetLocator{
				URL:     s.getString(KeySheetsTrechoURL, ""),
				TabName: s.getString(KeySheetsTrechoTab, ""),
			},
			Interprete: domain.SheetLocator{
				URL:     s.getString(KeySheetsInterpreteURL, ""),
				TabName: s.getString(KeySheetsInterpreteTab, ""),
			},
			RequestsPerSecond: s.getFloat(KeySheetsRPS, d.Sheets.RequestsPerSecond),
			Burst:             s.getInt(KeySheetsBurst, d.Sheets.Burst),
		},
		Server: domain.ServerSettings{
			Host:           s.getString(KeyServerHost, d.Server.Host),
			Port:           s.getInt(KeyServerPort, d.Server.Port),
			RootPath:       s.getString(KeyServerRootPath, d.Server.RootPath),
			AllowedOrigins: s.getList(KeyServerAllowedOrigins, d.Server.AllowedOrigins),
		},
		Snapshots: domain.SnapshotSettings{
			Endpoint:         s.getString(KeySnapshotsEndpoint, d.Snapshots.Endpoint),
			AccessKey:        s.getString(KeySnapshotsAccessKey, d.Snapshots.AccessKey),
			SecretKey:        s.getString(KeySnapshotsSecretKey, d.Snapshots.SecretKey),
			Bucket:           s.getString(KeySnapshotsBucket, d.Snapshots.Bucket),
			Region:           s.getString(KeySnapshotsRegion, d.Snapshots.Region),
			UseSSL:           s.getBool(KeySnapshotsUseSSL, d.Snapshots.UseSSL),
			URLExpirySeconds: s.getInt(KeySnapshotsURLExpiry, d.Snapshots.URLExpirySeconds),
		},
		DataDir: s.getString(KeyStorageDataDir, d.DataDir),
	}
	return settings, nil
}

// Set parses value for the key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindInt:
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		parsed = v
	case kindFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		parsed = v
	case kindBool:
		v, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = v
	case kindList:
		parsed = SplitList(value)
	default:
		parsed = value
	}
	return s.configStore.Set(key, parsed)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

// SplitList splits a comma-separated value, dropping empty items.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getList(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}
