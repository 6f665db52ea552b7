package domain

import "time"

// Reconciliation marks a video registration that stopped partway and needs
// to be replayed. Registration is idempotent, so replaying the whole
// sequence converges the sheets.
type Reconciliation struct {
	// ID is a UUID assigned when the marker is recorded.
	ID string

	InterpreteID int
	TrechoID     int
	VideoURL     string

	// Completed lists the steps that succeeded before the failure.
	Completed []RegistrationStep

	// FailedStep is the step that failed.
	FailedStep RegistrationStep

	// Error is the failure message.
	Error string

	// Attempts counts replays after the original failure.
	Attempts int

	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// IsResolved reports whether a later replay completed the registration.
func (r *Reconciliation) IsResolved() bool {
	return r.ResolvedAt != nil
}

// Registration returns the request to replay.
func (r *Reconciliation) Registration() VideoRegistration {
	return VideoRegistration{
		InterpreteID: r.InterpreteID,
		VideoURL:     r.VideoURL,
		TrechoID:     r.TrechoID,
	}
}
