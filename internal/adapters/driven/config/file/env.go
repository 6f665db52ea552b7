package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// Ensure EnvOverlay implements the interface.
var _ driven.ConfigStore = (*EnvOverlay)(nil)

// EnvVars maps config keys to the environment variables that override them,
// in lookup order. Lower-case names are accepted for .env files written for
// the previous backend.
var EnvVars = map[string][]string{
	"sheets.credentials_file":      {"SHEETS_CREDENTIALS_FILE", "sheets_credentials_file"},
	"sheets.site.url":              {"PLANILHA_SITE_URL", "planilha_site_url"},
	"sheets.site.tab_name":         {"PLANILHA_SITE_TAB_NAME", "planilha_site_tab_name"},
	"sheets.trecho.url":            {"PLANILHA_TRECHO_URL", "planilha_trecho_url"},
	"sheets.trecho.tab_name":       {"PLANILHA_TRECHO_TAB_NAME", "planilha_trecho_tab_name"},
	"sheets.interprete.url":        {"PLANILHA_INTERPRETE_URL", "planilha_interprete_url"},
	"sheets.interprete.tab_name":   {"PLANILHA_INTERPRETE_TAB_NAME", "planilha_interprete_tab_name"},
	"sheets.requests_per_second":   {"SHEETS_REQUESTS_PER_SECOND"},
	"sheets.burst":                 {"SHEETS_BURST"},
	"server.host":                  {"SINALIZA_HOST"},
	"server.port":                  {"SINALIZA_PORT"},
	"server.root_path":             {"ROOT_PATH_BACKEND"},
	"server.allowed_origins":       {"ALLOWED_ORIGINS"},
	"snapshots.endpoint":           {"MINIO_ENDPOINT"},
	"snapshots.access_key":         {"MINIO_ACCESS_KEY"},
	"snapshots.secret_key":         {"MINIO_SECRET_KEY"},
	"snapshots.bucket":             {"MINIO_BUCKET"},
	"snapshots.region":             {"MINIO_REGION"},
	"snapshots.use_ssl":            {"MINIO_USE_SSL"},
	"snapshots.url_expiry_seconds": {"SNAPSHOT_URL_EXPIRY_SECONDS"},
	"storage.data_dir":             {"SINALIZA_DATA_DIR"},
}

// LoadDotEnv loads a .env file into the process environment without
// overriding variables that are already set. An empty path loads ./.env
// when present; an explicit path must exist.
func LoadDotEnv(path string) error {
	if path == "" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	logger.Debug("loaded environment from %s", path)
	return nil
}

// EnvOverlay is a ConfigStore whose reads prefer environment variables over
// the wrapped store. Writes go to the wrapped store only.
type EnvOverlay struct {
	base   driven.ConfigStore
	lookup func(string) (string, bool)
}

// NewEnvOverlay wraps base with the process environment.
func NewEnvOverlay(base driven.ConfigStore) *EnvOverlay {
	return &EnvOverlay{base: base, lookup: os.LookupEnv}
}

// env returns the first non-empty variable mapped to key.
func (o *EnvOverlay) env(key string) (string, bool) {
	for _, name := range EnvVars[key] {
		if v, ok := o.lookup(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// Get retrieves a value; environment values are strings.
func (o *EnvOverlay) Get(key string) (any, bool) {
	if v, ok := o.env(key); ok {
		return v, true
	}
	return o.base.Get(key)
}

// GetString retrieves a string configuration value.
func (o *EnvOverlay) GetString(key string) string {
	if v, ok := o.env(key); ok {
		return v
	}
	return o.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (o *EnvOverlay) GetInt(key string) int {
	if v, ok := o.env(key); ok {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		logger.Warn("ignoring %s=%q: not an integer", EnvVars[key][0], v)
	}
	return o.base.GetInt(key)
}

// GetFloat retrieves a numeric configuration value.
func (o *EnvOverlay) GetFloat(key string) float64 {
	if v, ok := o.env(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
		logger.Warn("ignoring %s=%q: not a number", EnvVars[key][0], v)
	}
	return o.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value.
func (o *EnvOverlay) GetBool(key string) bool {
	if v, ok := o.env(key); ok {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
		logger.Warn("ignoring %s=%q: not a boolean", EnvVars[key][0], v)
	}
	return o.base.GetBool(key)
}

// GetStringSlice retrieves a list; environment values are comma separated.
func (o *EnvOverlay) GetStringSlice(key string) []string {
	if v, ok := o.env(key); ok {
		var out []string
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	}
	return o.base.GetStringSlice(key)
}

// Set persists a value in the wrapped store. An environment variable for
// the same key keeps taking precedence on reads.
func (o *EnvOverlay) Set(key string, value any) error {
	if _, ok := o.env(key); ok {
		logger.Warn("%s is overridden by the environment", key)
	}
	return o.base.Set(key, value)
}

// Keys returns the stored keys plus those set through the environment.
func (o *EnvOverlay) Keys() []string {
	seen := make(map[string]bool)
	for _, k := range o.base.Keys() {
		seen[k] = true
	}
	for k := range EnvVars {
		if _, ok := o.env(k); ok {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Source reports where a key's value comes from: the variable name, "file"
// or "" when unset.
func (o *EnvOverlay) Source(key string) string {
	for _, name := range EnvVars[key] {
		if v, ok := o.lookup(name); ok && strings.TrimSpace(v) != "" {
			return name
		}
	}
	if _, ok := o.base.Get(key); ok {
		return "file"
	}
	return ""
}

// Load reloads the wrapped store.
func (o *EnvOverlay) Load() error {
	return o.base.Load()
}

// Path returns the wrapped store's path.
func (o *EnvOverlay) Path() string {
	return o.base.Path()
}
