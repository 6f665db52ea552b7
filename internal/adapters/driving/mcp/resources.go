package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for sinaliza resources.
	uriScheme = "sinaliza://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sites",
		Name:        "sites",
		Description: "Pages whose paragraphs are offered for translation",
		MIMEType:    "application/json",
	}, s.handleSitesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "trechos/{trechoId}",
		Name:        "trecho-content",
		Description: "Text of a specific fragment",
		MIMEType:    "text/plain",
	}, s.handleTrechoResource)
}

// handleSitesResource returns every registered site.
func (s *Server) handleSitesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Sites == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	sites, err := s.ports.Sites.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sites: %w", err)
	}

	type siteInfo struct {
		ID         int    `json:"site_id"`
		URL        string `json:"site_url"`
		TrechosIDs []int  `json:"trechos_ids"`
	}

	infos := make([]siteInfo, len(sites))
	for i, site := range sites {
		ids := []int(site.TrechosIDs)
		if ids == nil {
			ids = []int{}
		}
		infos[i] = siteInfo{ID: site.SiteID, URL: site.SiteURL, TrechosIDs: ids}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sites: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleTrechoResource returns the text of a specific fragment.
func (s *Server) handleTrechoResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	trechoID, ok := extractTrechoID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	conteudo, err := s.ports.Trechos.GetConteudo(ctx, trechoID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("reading trecho %d: %w", trechoID, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     conteudo,
		}},
	}, nil
}

// extractTrechoID extracts the fragment ID from a URI like sinaliza://trechos/{trechoId}.
func extractTrechoID(uri string) (int, bool) {
	const prefix = uriScheme + "trechos/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return 0, false
	}
	return id, true
}
