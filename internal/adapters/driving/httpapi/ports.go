package httpapi

import (
	"errors"

	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
)

// ErrMissingService is returned when a required service is not provided.
var ErrMissingService = errors.New("httpapi: trecho, assignment and registration services are required")

// Ports aggregates the driving ports the API calls.
type Ports struct {
	Trechos      driving.TrechoService
	Assignment   driving.AssignmentService
	Registration driving.RegistrationService

	// Sites and Snapshots are optional; their routes answer 503 when unset.
	Sites     driving.SiteService
	Snapshots driving.SnapshotService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Trechos == nil || p.Assignment == nil || p.Registration == nil {
		return ErrMissingService
	}
	return nil
}
