package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// GetConteudoInput is the input schema for the get_conteudo_trecho tool.
type GetConteudoInput struct {
	TrechoID int `json:"trecho_id" jsonschema:"id of the fragment to read"`
}

// GetConteudoOutput is the output schema for the get_conteudo_trecho tool.
type GetConteudoOutput struct {
	TrechoID int    `json:"trecho_id"`
	Conteudo string `json:"conteudo"`
}

// ParaTraduzirInput is the input schema for the get_trecho_para_traduzir tool.
type ParaTraduzirInput struct {
	SiteID *int `json:"site_id,omitempty" jsonschema:"restrict to fragments of this site"`
	GetAll bool `json:"get_all_trechos_from_site,omitempty" jsonschema:"return every unassigned fragment instead of the first"`
}

// ParaTraduzirOutput is the output schema for the get_trecho_para_traduzir tool.
type ParaTraduzirOutput struct {
	Trechos []CandidateOutput `json:"trechos"`
	Count   int               `json:"count"`
}

// CandidateOutput is one fragment awaiting translation.
type CandidateOutput struct {
	TrechoID     int    `json:"trecho_id"`
	Conteudo     string `json:"conteudo"`
	SnapshotName string `json:"snapshot_name,omitempty"`
	SiteID       *int   `json:"site_id,omitempty"`
	SiteURL      string `json:"site_url"`
	SnapshotURL  string `json:"snapshot_url,omitempty"`
}

// RegistraVideoInput is the input schema for the registra_video tool.
type RegistraVideoInput struct {
	InterpreteID int    `json:"interprete_id" jsonschema:"id of the interpreter who recorded the video"`
	VideoURL     string `json:"video_url" jsonschema:"http(s) address of the translation video"`
	TrechoID     int    `json:"trecho_id" jsonschema:"id of the translated fragment"`
}

// RegistraVideoOutput is the output schema for the registra_video tool.
type RegistraVideoOutput struct {
	Completed []string `json:"completed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_conteudo_trecho",
		Description: "Read the text of a fragment",
	}, s.handleGetConteudo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_trecho_para_traduzir",
		Description: "List fragments that have no translation video yet, optionally for one site",
	}, s.handleParaTraduzir)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "registra_video",
		Description: "Register a translation video for a fragment on behalf of an interpreter",
	}, s.handleRegistraVideo)
}

func (s *Server) handleGetConteudo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetConteudoInput,
) (*mcp.CallToolResult, GetConteudoOutput, error) {
	conteudo, err := s.ports.Trechos.GetConteudo(ctx, input.TrechoID)
	if err != nil {
		return nil, GetConteudoOutput{}, err
	}
	return nil, GetConteudoOutput{TrechoID: input.TrechoID, Conteudo: conteudo}, nil
}

func (s *Server) handleParaTraduzir(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParaTraduzirInput,
) (*mcp.CallToolResult, ParaTraduzirOutput, error) {
	candidates, err := s.ports.Assignment.SelectForTranslation(ctx, domain.SelectionOptions{
		SiteID:    input.SiteID,
		ReturnAll: input.GetAll,
	})
	if err != nil {
		return nil, ParaTraduzirOutput{}, err
	}

	output := ParaTraduzirOutput{
		Trechos: make([]CandidateOutput, len(candidates)),
		Count:   len(candidates),
	}
	for i, c := range candidates {
		output.Trechos[i] = CandidateOutput{
			TrechoID:     c.TrechoID,
			Conteudo:     c.Conteudo,
			SnapshotName: domain.Deref(c.SnapshotName),
			SiteID:       c.SiteID,
			SiteURL:      c.SiteURL,
			SnapshotURL:  c.SnapshotURL,
		}
	}
	return nil, output, nil
}

func (s *Server) handleRegistraVideo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RegistraVideoInput,
) (*mcp.CallToolResult, RegistraVideoOutput, error) {
	report, err := s.ports.Registration.RegisterVideo(ctx, domain.VideoRegistration{
		InterpreteID: input.InterpreteID,
		VideoURL:     input.VideoURL,
		TrechoID:     input.TrechoID,
	})
	if err != nil {
		return nil, RegistraVideoOutput{}, err
	}

	output := RegistraVideoOutput{Completed: make([]string, len(report.Completed))}
	for i, step := range report.Completed {
		output.Completed[i] = string(step)
	}
	return nil, output, nil
}
