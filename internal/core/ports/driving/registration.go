package driving

import (
	"context"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// RegistrationService attaches translation videos to fragments.
type RegistrationService interface {
	// RegisterVideo assigns the fragment to the interpreter, stores the video
	// URL and appends the fragment to the interpreter's list.
	//
	// Returns domain.ErrAlreadyAssigned if another interpreter holds the
	// fragment and a *domain.PartialWriteError if the sequence stopped after
	// some writes landed. Registering the same video twice is a no-op.
	RegisterVideo(ctx context.Context, reg domain.VideoRegistration) (*domain.RegistrationReport, error)
}
