package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() AppSettings {
	s := DefaultAppSettings()
	s.Sheets.CredentialsFile = "/tmp/key.json"
	s.Sheets.Site = SheetLocator{URL: "https://docs.google.com/spreadsheets/d/site/edit", TabName: "sites"}
	s.Sheets.Trecho = SheetLocator{URL: "https://docs.google.com/spreadsheets/d/trecho/edit", TabName: "trechos"}
	s.Sheets.Interprete = SheetLocator{URL: "https://docs.google.com/spreadsheets/d/interp/edit", TabName: "interpretes"}
	return s
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "localhost", s.Server.Host)
	assert.Equal(t, 8000, s.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, s.Server.AllowedOrigins)
	assert.Greater(t, s.Sheets.RequestsPerSecond, 0.0)
	assert.Equal(t, "snapshots", s.Snapshots.Bucket)
	assert.False(t, s.Snapshots.IsConfigured())
}

func TestAppSettings_Validate(t *testing.T) {
	s := validSettings()
	require.NoError(t, s.Validate())
}

func TestAppSettings_Validate_Missing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
		want   string
	}{
		{"credentials", func(s *AppSettings) { s.Sheets.CredentialsFile = "" }, "credentials"},
		{"trecho url", func(s *AppSettings) { s.Sheets.Trecho.URL = "" }, "trecho"},
		{"interprete tab", func(s *AppSettings) { s.Sheets.Interprete.TabName = " " }, "interprete"},
		{"port", func(s *AppSettings) { s.Server.Port = 0 }, "port"},
		{"rate", func(s *AppSettings) { s.Sheets.RequestsPerSecond = 0 }, "requests_per_second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSheetsSettings_Locator(t *testing.T) {
	s := validSettings().Sheets
	assert.Equal(t, "sites", s.Locator(EntitySite).TabName)
	assert.Equal(t, "trechos", s.Locator(EntityTrecho).TabName)
	assert.Equal(t, "interpretes", s.Locator(EntityInterprete).TabName)
	assert.False(t, s.Locator(Entity("other")).IsConfigured())
}

func TestServerSettings_NormalisedRootPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"localhost", ""},
		{"LOCALHOST", ""},
		{"/", ""},
		{"api", "/api"},
		{"/api/", "/api"},
		{"/v1/backend", "/v1/backend"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ServerSettings{RootPath: tt.in}.NormalisedRootPath())
		})
	}
}

func TestServerSettings_Addr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:9000", ServerSettings{Host: "0.0.0.0", Port: 9000}.Addr())
}

func TestSnapshotSettings_IsConfigured(t *testing.T) {
	s := SnapshotSettings{Endpoint: "localhost:9000", Bucket: "b", AccessKey: "a", SecretKey: "s"}
	assert.True(t, s.IsConfigured())
	s.SecretKey = ""
	assert.False(t, s.IsConfigured())
}
