package mcp

import (
	"context"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// mockTrechoService is a mock implementation of driving.TrechoService.
type mockTrechoService struct {
	trecho *domain.Trecho
	list   []domain.Trecho
	err    error
}

func (m *mockTrechoService) GetConteudo(_ context.Context, _ int) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.trecho.Conteudo, nil
}

func (m *mockTrechoService) Get(_ context.Context, _ int) (*domain.Trecho, error) {
	return m.trecho, m.err
}

func (m *mockTrechoService) List(_ context.Context, _ *int) ([]domain.Trecho, error) {
	return m.list, m.err
}

func (m *mockTrechoService) Delete(_ context.Context, _ int) error {
	return m.err
}

// mockAssignmentService is a mock implementation of driving.AssignmentService.
type mockAssignmentService struct {
	candidates []domain.TranslationCandidate
	lastOpts   domain.SelectionOptions
	err        error
}

func (m *mockAssignmentService) SelectForTranslation(
	_ context.Context,
	opts domain.SelectionOptions,
) ([]domain.TranslationCandidate, error) {
	m.lastOpts = opts
	return m.candidates, m.err
}

// mockRegistrationService is a mock implementation of driving.RegistrationService.
type mockRegistrationService struct {
	last   domain.VideoRegistration
	report *domain.RegistrationReport
	err    error
}

func (m *mockRegistrationService) RegisterVideo(
	_ context.Context,
	reg domain.VideoRegistration,
) (*domain.RegistrationReport, error) {
	m.last = reg
	return m.report, m.err
}

// mockSiteService is a mock implementation of driving.SiteService.
type mockSiteService struct {
	sites []domain.Site
	err   error
}

func (m *mockSiteService) Register(_ context.Context, _ string) (*domain.Site, bool, error) {
	return nil, false, m.err
}

func (m *mockSiteService) Get(_ context.Context, _ int) (*domain.Site, error) {
	return nil, m.err
}

func (m *mockSiteService) List(_ context.Context) ([]domain.Site, error) {
	return m.sites, m.err
}

func validPorts() *Ports {
	return &Ports{
		Trechos:      &mockTrechoService{trecho: &domain.Trecho{Conteudo: "olá"}},
		Assignment:   &mockAssignmentService{},
		Registration: &mockRegistrationService{},
	}
}
