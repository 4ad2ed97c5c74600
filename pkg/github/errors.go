package github

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
)

// ErrorKind categorizes hosting API failures.
type ErrorKind string

const (
	KindAuth       ErrorKind = "authentication"
	KindPermission ErrorKind = "permission"
	KindNotFound   ErrorKind = "not_found"
	KindValidation ErrorKind = "validation"
	KindRateLimit  ErrorKind = "rate_limit"
	KindNetwork    ErrorKind = "network"
	KindUnknown    ErrorKind = "unknown"
)

// APIError is a structured error from hosting API operations.
type APIError struct {
	Kind      ErrorKind
	Message   string
	Resource  string
	Cause     error
	Retryable bool
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Kind, e.Resource, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether retrying the operation may succeed.
func (e *APIError) IsRetryable() bool {
	return e.Retryable
}

// NewNotFoundError creates an APIError of the not_found kind. Used when a
// lower-level not-found condition must be re-raised with a clearer message.
func NewNotFoundError(message string, cause error) *APIError {
	return &APIError{Kind: KindNotFound, Message: message, Cause: cause}
}

// WrapAPIError wraps a go-github error into an APIError, classifying it by
// response status code.
func WrapAPIError(err error, resource string) *APIError {
	if err == nil {
		return nil
	}

	if apiErr, ok := err.(*APIError); ok {
		if apiErr.Resource == "" {
			apiErr.Resource = resource
		}
		return apiErr
	}

	if ghErr, ok := err.(*github.ErrorResponse); ok {
		return parseErrorResponse(ghErr, resource)
	}

	if rateErr, ok := err.(*github.RateLimitError); ok {
		return &APIError{
			Kind:      KindRateLimit,
			Message:   fmt.Sprintf("rate limit exceeded, resets at %v", rateErr.Rate.Reset.Time),
			Resource:  resource,
			Cause:     err,
			Retryable: true,
		}
	}

	if isNetworkError(err) {
		return &APIError{
			Kind:      KindNetwork,
			Message:   "network error, check your connection and the base url",
			Resource:  resource,
			Cause:     err,
			Retryable: true,
		}
	}

	return &APIError{
		Kind:     KindUnknown,
		Message:  err.Error(),
		Resource: resource,
		Cause:    err,
	}
}

// parseErrorResponse maps hosting API response codes onto error kinds.
func parseErrorResponse(ghErr *github.ErrorResponse, resource string) *APIError {
	apiErr := &APIError{Resource: resource, Cause: ghErr}

	switch ghErr.Response.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Kind = KindAuth
		apiErr.Message = "authentication failed, check your OAUTH token"

	case http.StatusForbidden:
		if strings.Contains(ghErr.Message, "rate limit") {
			apiErr.Kind = KindRateLimit
			apiErr.Message = "rate limit exceeded, wait before retrying"
			apiErr.Retryable = true
		} else {
			apiErr.Kind = KindPermission
			apiErr.Message = "insufficient permissions, your token may lack the required scopes"
		}

	case http.StatusNotFound:
		apiErr.Kind = KindNotFound
		apiErr.Message = "resource not found"
		if resource != "" {
			apiErr.Message = resource + " could not be found"
		}

	case http.StatusUnprocessableEntity:
		apiErr.Kind = KindValidation
		apiErr.Message = "validation failed"
		if len(ghErr.Errors) > 0 {
			var details []string
			for _, e := range ghErr.Errors {
				if e.Field != "" {
					details = append(details, fmt.Sprintf("%s: %s", e.Field, e.Message))
				} else {
					details = append(details, e.Message)
				}
			}
			apiErr.Message = "validation failed: " + strings.Join(details, "; ")
		}

	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		apiErr.Kind = KindNetwork
		apiErr.Message = "hosting API is temporarily unavailable"
		apiErr.Retryable = true

	default:
		apiErr.Kind = KindUnknown
		apiErr.Message = ghErr.Message
		apiErr.Retryable = ghErr.Response.StatusCode >= 500
	}

	return apiErr
}

// isNetworkError checks for connection-level failures that go-github does
// not classify.
func isNetworkError(err error) bool {
	errStr := strings.ToLower(err.Error())
	keywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no such host",
		"timeout",
		"dial tcp",
	}

	for _, keyword := range keywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// RetryConfig defines the retry policy for API operations.
type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig returns the retry policy used by the API client.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:    3,
		InitialDelay:  time.Second,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2.0,
	}
}

// WithRetry executes an operation, retrying retryable APIErrors with
// exponential backoff.
func WithRetry(operation func() error, config *RetryConfig) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)

			delay = time.Duration(float64(delay) * config.BackoffFactor)
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
		}

		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		apiErr, ok := err.(*APIError)
		if !ok || !apiErr.IsRetryable() {
			return err
		}
	}

	return fmt.Errorf("operation failed after %d retries: %w", config.MaxRetries, lastErr)
}
