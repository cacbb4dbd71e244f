package vcs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-github/v50/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiError_TranslatesErrorResponse(t *testing.T) {
	upstream := &github.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  "Not Found",
	}

	err := apiError(upstream)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Not Found", apiErr.Message)
}

func TestApiError_TranslatesRateLimit(t *testing.T) {
	upstream := &github.RateLimitError{
		Response: &http.Response{StatusCode: http.StatusForbidden},
		Message:  "API rate limit exceeded",
	}

	err := apiError(upstream)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "API rate limit exceeded", apiErr.Message)
}

func TestApiError_PassesOtherErrorsThrough(t *testing.T) {
	upstream := fmt.Errorf("dial tcp: %w", errors.New("connection refused"))

	err := apiError(upstream)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Same(t, upstream, err)
}
