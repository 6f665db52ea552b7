package services

import (
	"context"
	"fmt"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
)

// Ensure TrechoService implements the interface.
var _ driving.TrechoService = (*TrechoService)(nil)

// TrechoService reads and administers fragments.
type TrechoService struct {
	trechos driven.TrechoStore
}

// NewTrechoService creates a new fragment service.
func NewTrechoService(trechos driven.TrechoStore) *TrechoService {
	return &TrechoService{trechos: trechos}
}

// GetConteudo returns the text of a fragment.
func (s *TrechoService) GetConteudo(ctx context.Context, trechoID int) (string, error) {
	t, err := s.Get(ctx, trechoID)
	if err != nil {
		return "", err
	}
	return t.Conteudo, nil
}

// Get retrieves a fragment by ID.
func (s *TrechoService) Get(ctx context.Context, trechoID int) (*domain.Trecho, error) {
	if s.trechos == nil {
		return nil, domain.ErrNotImplemented
	}
	t, err := s.trechos.GetOneByID(ctx, trechoID)
	if err != nil {
		return nil, fmt.Errorf("get trecho: %w", err)
	}
	return t, nil
}

// List returns fragments, optionally restricted to a site.
func (s *TrechoService) List(ctx context.Context, siteID *int) ([]domain.Trecho, error) {
	if s.trechos == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.trechos.GetAll(ctx, siteID)
}

// Delete removes a fragment row.
func (s *TrechoService) Delete(ctx context.Context, trechoID int) error {
	if s.trechos == nil {
		return domain.ErrNotImplemented
	}
	return s.trechos.DeleteOneByID(ctx, trechoID)
}
