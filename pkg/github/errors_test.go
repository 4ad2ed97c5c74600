package github

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name: "error with resource",
			err: &APIError{
				Kind:     KindAuth,
				Message:  "invalid token",
				Resource: "organization course",
			},
			expected: "authentication error for organization course: invalid token",
		},
		{
			name: "error without resource",
			err: &APIError{
				Kind:    KindValidation,
				Message: "validation failed",
			},
			expected: "validation error: validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &APIError{Kind: KindNetwork, Message: "network error", Cause: cause}

	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
}

func errorResponse(statusCode int, message string) *github.ErrorResponse {
	return &github.ErrorResponse{
		Response: &http.Response{StatusCode: statusCode},
		Message:  message,
	}
}

func TestWrapAPIError_StatusCodes(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantKind  ErrorKind
		retryable bool
	}{
		{"unauthorized", errorResponse(http.StatusUnauthorized, "Bad credentials"), KindAuth, false},
		{"forbidden", errorResponse(http.StatusForbidden, "Must have admin rights"), KindPermission, false},
		{"rate limited", errorResponse(http.StatusForbidden, "API rate limit exceeded"), KindRateLimit, true},
		{"not found", errorResponse(http.StatusNotFound, "Not Found"), KindNotFound, false},
		{"validation", errorResponse(http.StatusUnprocessableEntity, "Validation Failed"), KindValidation, false},
		{"server error", errorResponse(http.StatusBadGateway, "Bad Gateway"), KindNetwork, true},
		{"teapot", errorResponse(http.StatusTeapot, "I'm a teapot"), KindUnknown, false},
		{"connection refused", fmt.Errorf("dial tcp 127.0.0.1:443: connection refused"), KindNetwork, true},
		{"plain error", errors.New("something odd"), KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapAPIError(tt.err, "test resource")
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.wantKind, wrapped.Kind)
			assert.Equal(t, tt.retryable, wrapped.IsRetryable())
			assert.Equal(t, "test resource", wrapped.Resource)
		})
	}
}

func TestWrapAPIError_NotFoundNamesResource(t *testing.T) {
	wrapped := WrapAPIError(errorResponse(http.StatusNotFound, "Not Found"), "organization course")
	assert.Contains(t, wrapped.Message, "organization course")
	assert.Contains(t, wrapped.Message, "could not be found")
}

func TestWrapAPIError_PreservesExistingAPIError(t *testing.T) {
	original := &APIError{Kind: KindNotFound, Message: "gone"}
	wrapped := WrapAPIError(original, "some resource")

	assert.Same(t, original, wrapped)
	assert.Equal(t, "some resource", wrapped.Resource)
}

func TestWrapAPIError_Nil(t *testing.T) {
	assert.Nil(t, WrapAPIError(nil, "anything"))
}

func TestWithRetry(t *testing.T) {
	fastRetry := &RetryConfig{
		MaxRetries:    2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := WithRetry(func() error {
			calls++
			return nil
		}, fastRetry)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries retryable errors", func(t *testing.T) {
		calls := 0
		err := WithRetry(func() error {
			calls++
			if calls < 3 {
				return &APIError{Kind: KindNetwork, Message: "flaky", Retryable: true}
			}
			return nil
		}, fastRetry)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry non-retryable errors", func(t *testing.T) {
		calls := 0
		err := WithRetry(func() error {
			calls++
			return &APIError{Kind: KindNotFound, Message: "gone"}
		}, fastRetry)
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := WithRetry(func() error {
			calls++
			return &APIError{Kind: KindNetwork, Message: "down", Retryable: true}
		}, fastRetry)
		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Contains(t, err.Error(), "after 2 retries")
	})
}
