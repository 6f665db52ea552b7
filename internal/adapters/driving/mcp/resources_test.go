package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestExtractTrechoID(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		wantID int
		wantOK bool
	}{
		{name: "valid trecho URI", uri: "sinaliza://trechos/42", wantID: 42, wantOK: true},
		{name: "invalid prefix", uri: "file://trechos/42"},
		{name: "non-numeric id", uri: "sinaliza://trechos/abc"},
		{name: "empty URI", uri: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := extractTrechoID(tt.uri)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestServer_handleSitesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("without site service returns empty list", func(t *testing.T) {
		server, err := NewServer(validPorts())
		require.NoError(t, err)

		result, err := server.handleSitesResource(ctx, readRequest("sinaliza://sites"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists sites", func(t *testing.T) {
		ports := validPorts()
		ports.Sites = &mockSiteService{sites: []domain.Site{
			{SiteID: 10, SiteURL: "https://gov.br/a", TrechosIDs: domain.IDList{1, 2}},
			{SiteID: 20, SiteURL: "https://gov.br/b"},
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleSitesResource(ctx, readRequest("sinaliza://sites"))
		require.NoError(t, err)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"site_id": 10`)
		assert.Contains(t, text, `"site_url": "https://gov.br/b"`)
		assert.Contains(t, text, `"trechos_ids": []`)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("store failure", func(t *testing.T) {
		ports := validPorts()
		ports.Sites = &mockSiteService{err: errors.New("sheet down")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleSitesResource(ctx, readRequest("sinaliza://sites"))
		assert.ErrorContains(t, err, "sheet down")
	})
}

func TestServer_handleTrechoResource(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(validPorts())
	require.NoError(t, err)

	result, err := server.handleTrechoResource(ctx, readRequest("sinaliza://trechos/1"))
	require.NoError(t, err)
	assert.Equal(t, "olá", result.Contents[0].Text)
	assert.Equal(t, "text/plain", result.Contents[0].MIMEType)

	_, err = server.handleTrechoResource(ctx, readRequest("sinaliza://trechos/x"))
	assert.Error(t, err)
}
