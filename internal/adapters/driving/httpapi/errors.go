package httpapi

import (
	"errors"
	"net/http"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// errorBody is the JSON answered on failure.
type errorBody struct {
	Status           int    `json:"status"`
	Detail           string `json:"detail"`
	ReconciliationID string `json:"reconciliation_id,omitempty"`
}

// statusFor maps an error kind to an HTTP status code.
func statusFor(err error) int {
	var pw *domain.PartialWriteError
	switch {
	case errors.As(err, &pw):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyAssigned):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSnapshotsUnavailable),
		errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, domain.ErrConfiguration):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers err with its mapped status.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorBody{Status: status, Detail: err.Error()}

	var pw *domain.PartialWriteError
	if errors.As(err, &pw) {
		body.ReconciliationID = pw.ReconciliationID
	}
	if status >= http.StatusInternalServerError {
		logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		logger.Debug("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, body)
}
