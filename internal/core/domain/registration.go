package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// RegistrationStep names one write of the video registration sequence.
type RegistrationStep string

// Registration steps, in execution order.
const (
	// StepVideoURL writes the video URL into the fragment row.
	StepVideoURL RegistrationStep = "video_url"

	// StepInterpreteID writes the interpreter id into the fragment row,
	// which flips the fragment to assigned.
	StepInterpreteID RegistrationStep = "interprete_id"

	// StepReadInterprete reads the interpreter's current fragment list.
	StepReadInterprete RegistrationStep = "read_interprete"

	// StepWriteTrechosIDs writes the updated list back to the interpreter row.
	StepWriteTrechosIDs RegistrationStep = "trechos_ids"
)

// AllRegistrationSteps returns the steps in execution order.
func AllRegistrationSteps() []RegistrationStep {
	return []RegistrationStep{StepVideoURL, StepInterpreteID, StepReadInterprete, StepWriteTrechosIDs}
}

// VideoRegistration is a request to attach a translation video to a fragment.
type VideoRegistration struct {
	InterpreteID int
	VideoURL     string
	TrechoID     int
}

// Validate checks the request before any write is attempted.
func (r VideoRegistration) Validate() error {
	if strings.TrimSpace(r.VideoURL) == "" {
		return fmt.Errorf("%w: video_url is required", ErrInvalidInput)
	}
	u, err := url.Parse(strings.TrimSpace(r.VideoURL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: video_url %q is not an http(s) URL", ErrInvalidInput, r.VideoURL)
	}
	return nil
}

// RegistrationReport lists the steps a registration completed.
type RegistrationReport struct {
	Completed []RegistrationStep
}

// Done reports whether every step completed.
func (r RegistrationReport) Done() bool {
	return len(r.Completed) == len(AllRegistrationSteps())
}
