package sheetstore

import (
	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
)

// Ensure the repositories implement the record store interfaces.
var (
	_ driven.SiteStore       = (*Repository[domain.Site])(nil)
	_ driven.TrechoStore     = (*Repository[domain.Trecho])(nil)
	_ driven.InterpreteStore = (*Repository[domain.Interprete])(nil)
)

// NewSiteStore creates the site repository.
func NewSiteStore(ws driven.Worksheet) *Repository[domain.Site] {
	return New(ws, SiteCodec())
}

// NewTrechoStore creates the fragment repository.
func NewTrechoStore(ws driven.Worksheet) *Repository[domain.Trecho] {
	return New(ws, TrechoCodec())
}

// NewInterpreteStore creates the interpreter repository.
func NewInterpreteStore(ws driven.Worksheet) *Repository[domain.Interprete] {
	return New(ws, InterpreteCodec())
}
