package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind error
		wantAPI  error
	}{
		{"unauthorised", &googleapi.Error{Code: http.StatusUnauthorized}, domain.ErrStoreUnavailable, ErrUnauthorized},
		{"forbidden", &googleapi.Error{Code: http.StatusForbidden}, domain.ErrStoreUnavailable, ErrForbidden},
		{"not found", &googleapi.Error{Code: http.StatusNotFound}, domain.ErrStoreUnavailable, ErrNotFound},
		{"rate limited", &googleapi.Error{Code: http.StatusTooManyRequests}, domain.ErrRateLimited, ErrRateLimited},
		{"bad request", &googleapi.Error{Code: http.StatusBadRequest, Message: "bad range"}, domain.ErrInvalidInput, ErrBadRequest},
		{"server error", &googleapi.Error{Code: http.StatusServiceUnavailable}, domain.ErrStoreUnavailable, nil},
		{"network", errors.New("dial tcp: refused"), domain.ErrStoreUnavailable, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err)
			assert.True(t, errors.Is(got, tt.wantKind))
			if tt.wantAPI != nil {
				assert.True(t, errors.Is(got, tt.wantAPI))
			}
		})
	}
}

func TestWrapError_Passthrough(t *testing.T) {
	assert.NoError(t, WrapError(nil))
	assert.Equal(t, context.Canceled, WrapError(context.Canceled))

	wrapped := fmt.Errorf("read: %w", context.DeadlineExceeded)
	assert.Equal(t, wrapped, WrapError(wrapped))
}

func TestWrapError_RateLimitedIsUnavailable(t *testing.T) {
	got := WrapError(&googleapi.Error{Code: http.StatusTooManyRequests})
	assert.True(t, errors.Is(got, domain.ErrStoreUnavailable))
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsUnauthorized(&googleapi.Error{Code: http.StatusUnauthorized}))
	assert.True(t, IsUnauthorized(ErrUnauthorized))
	assert.True(t, IsForbidden(fmt.Errorf("x: %w", &googleapi.Error{Code: http.StatusForbidden})))
	assert.True(t, IsNotFound(&googleapi.Error{Code: http.StatusNotFound}))
	assert.True(t, IsRateLimited(&googleapi.Error{Code: http.StatusTooManyRequests}))
	assert.False(t, IsRateLimited(errors.New("other")))
	assert.False(t, IsNotFound(&googleapi.Error{Code: http.StatusForbidden}))
}

func TestRetryAfter(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "12")
	assert.Equal(t, 12, RetryAfter(&googleapi.Error{Code: 429, Header: h}))

	bad := http.Header{}
	bad.Set("Retry-After", "soon")
	assert.Equal(t, 0, RetryAfter(&googleapi.Error{Code: 429, Header: bad}))
	assert.Equal(t, 0, RetryAfter(&googleapi.Error{Code: 429}))
	assert.Equal(t, 0, RetryAfter(errors.New("x")))
}
