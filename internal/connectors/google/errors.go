package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"google.golang.org/api/googleapi"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

// Common Google API errors.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = errors.New("google: unauthorised (invalid credentials)")

	// ErrForbidden indicates the service account cannot open the spreadsheet.
	ErrForbidden = errors.New("google: forbidden (spreadsheet not shared with the service account)")

	// ErrNotFound indicates the spreadsheet or tab does not exist.
	ErrNotFound = errors.New("google: resource not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("google: rate limit exceeded")

	// ErrBadRequest indicates the API rejected the request, e.g. a bad range.
	ErrBadRequest = errors.New("google: bad request")
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || hasCode(err, http.StatusUnauthorized)
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) || hasCode(err, http.StatusForbidden)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || hasCode(err, http.StatusNotFound)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited) || hasCode(err, http.StatusTooManyRequests)
}

func hasCode(err error, code int) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == code
	}
	return false
}

// RetryAfter returns the Retry-After delay of a 429 response in seconds,
// or 0 when the response carries none.
func RetryAfter(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil || secs < 0 {
		return 0
	}
	return secs
}

// WrapError converts a Google API error into a domain error kind.
// Every failure to talk to the spreadsheet is domain.ErrStoreUnavailable;
// rejected requests are domain.ErrInvalidInput. Context cancellation is
// returned unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, ErrUnauthorized)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, ErrForbidden)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, ErrNotFound)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w: %w", domain.ErrStoreUnavailable, domain.ErrRateLimited, ErrRateLimited)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %w: %s", domain.ErrInvalidInput, ErrBadRequest, gerr.Message)
	default:
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
}
