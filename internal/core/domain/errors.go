package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// Adapters wrap them with %w so callers classify failures with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input: an id that is not
	// an integer, an unknown column, or a row that fails required-field parsing.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Spreadsheet Errors.

	// ErrConfiguration indicates missing or invalid credentials or sheet locators.
	ErrConfiguration = errors.New("configuration error")

	// ErrStoreUnavailable indicates the spreadsheet could not be reached, the
	// worksheet is disabled, or the provider rejected the request.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrRateLimited indicates the spreadsheet API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Registration Errors.

	// ErrAlreadyAssigned indicates a fragment is already assigned to another interpreter.
	ErrAlreadyAssigned = errors.New("fragment already assigned")

	// ErrPartialWrite indicates a multi-step registration stopped partway.
	ErrPartialWrite = errors.New("partial write")

	// ErrSnapshotsUnavailable indicates no snapshot store is configured.
	ErrSnapshotsUnavailable = errors.New("snapshot store unavailable")
)

// PartialWriteError reports a registration that completed some, but not all,
// of its steps. The fragment may be marked assigned while the interpreter's
// list is stale; ReconciliationID points at the persisted marker, if any.
type PartialWriteError struct {
	InterpreteID     int
	TrechoID         int
	Completed        []RegistrationStep
	Failed           RegistrationStep
	ReconciliationID string
	Err              error
}

// Error implements error.
func (e *PartialWriteError) Error() string {
	done := make([]string, len(e.Completed))
	for i, s := range e.Completed {
		done[i] = string(s)
	}
	return fmt.Sprintf("partial write registering trecho %d for interprete %d: step %s failed after [%s]: %v",
		e.TrechoID, e.InterpreteID, e.Failed, strings.Join(done, ", "), e.Err)
}

// Unwrap exposes both the partial-write kind and the underlying cause.
func (e *PartialWriteError) Unwrap() []error {
	return []error{ErrPartialWrite, e.Err}
}
