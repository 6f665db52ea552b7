package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrConfiguration", ErrConfiguration},
		{"ErrStoreUnavailable", ErrStoreUnavailable},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrAlreadyAssigned", ErrAlreadyAssigned},
		{"ErrPartialWrite", ErrPartialWrite},
		{"ErrSnapshotsUnavailable", ErrSnapshotsUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_AreDistinct tests that no sentinel matches another
func TestErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidInput, ErrNotImplemented,
		ErrConfiguration, ErrStoreUnavailable, ErrRateLimited,
		ErrAlreadyAssigned, ErrPartialWrite, ErrSnapshotsUnavailable,
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
}

func TestErrStoreUnavailable_Wrapped(t *testing.T) {
	err := fmt.Errorf("trecho sheet: %w", ErrStoreUnavailable)
	assert.True(t, errors.Is(err, ErrStoreUnavailable))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestPartialWriteError(t *testing.T) {
	cause := fmt.Errorf("append: %w", ErrStoreUnavailable)
	err := &PartialWriteError{
		InterpreteID:     3,
		TrechoID:         7,
		Completed:        []RegistrationStep{StepVideoURL, StepInterpreteID},
		Failed:           StepReadInterprete,
		ReconciliationID: "rec-1",
		Err:              cause,
	}

	assert.True(t, errors.Is(err, ErrPartialWrite))
	assert.True(t, errors.Is(err, ErrStoreUnavailable))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "trecho 7")
	assert.Contains(t, err.Error(), "interprete 3")
	assert.Contains(t, err.Error(), "read_interprete")
	assert.Contains(t, err.Error(), "video_url, interprete_id")

	var pw *PartialWriteError
	wrapped := fmt.Errorf("register: %w", err)
	assert.True(t, errors.As(wrapped, &pw))
	assert.Equal(t, "rec-1", pw.ReconciliationID)
}
