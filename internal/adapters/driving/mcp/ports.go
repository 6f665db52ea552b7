package mcp

import (
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Trechos reads fragment text.
	Trechos driving.TrechoService

	// Assignment selects fragments awaiting translation.
	Assignment driving.AssignmentService

	// Registration attaches videos to fragments.
	Registration driving.RegistrationService

	// Sites lists the pages fragments come from. Optional.
	Sites driving.SiteService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Trechos == nil || p.Assignment == nil || p.Registration == nil {
		return ErrMissingService
	}
	return nil
}
