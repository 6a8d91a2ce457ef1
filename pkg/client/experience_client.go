package client

import (
	"context"
	"errors"
	"strings"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

// Error types for the experience catalog upstream.
// These indicate non-retryable errors that should fail immediately.

// CatalogError represents an error response from the experience catalog.
// It includes the HTTP status code for proper error classification.
type CatalogError struct {
	StatusCode int
	Message    string
}

func (e *CatalogError) Error() string {
	return e.Message
}

// HTTPStatusCode returns the HTTP status code from the catalog response.
func (e *CatalogError) HTTPStatusCode() int {
	return e.StatusCode
}

// NotFoundError indicates the experience does not exist (404).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return "resource not found: " + e.Resource
}

func (e *NotFoundError) HTTPStatusCode() int {
	return 404
}

// AuthenticationError indicates authentication failure (401).
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Message
}

func (e *AuthenticationError) HTTPStatusCode() int {
	return 401
}

// HTTPStatusCodeError is an interface for errors that include HTTP status codes.
type HTTPStatusCodeError interface {
	error
	HTTPStatusCode() int
}

// IsRetryableHTTPStatus determines if an HTTP status code should be retried.
//
// Non-retryable status codes (4xx client errors):
//   - 400 Bad Request, 401 Unauthorized, 403 Forbidden, 404 Not Found,
//     409 Conflict, 422 Unprocessable Entity
//
// Retryable status codes:
//   - 408 Request Timeout, 429 Too Many Requests, 500, 502, 503, 504
func IsRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 400, 401, 403, 404, 409, 422:
		return false
	case 408, 429, 500, 502, 503, 504:
		return true
	default:
		if statusCode >= 400 && statusCode < 500 {
			return false
		}
		return true
	}
}

// IsRetryableError determines if an error from ExperienceClient should
// be retried.
//
// Classification strategy:
//  1. If error implements HTTPStatusCodeError, check status code
//  2. Fallback to error message pattern matching for generic errors
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var httpErr HTTPStatusCodeError
	if errors.As(err, &httpErr) {
		return IsRetryableHTTPStatus(httpErr.HTTPStatusCode())
	}

	errMsg := strings.ToLower(err.Error())

	nonRetryablePatterns := []string{
		"bad request",
		"invalid argument",
		"not found",
		"forbidden",
		"unauthorized",
		"authentication failed",
		"permission denied",
	}

	for _, pattern := range nonRetryablePatterns {
		if strings.Contains(errMsg, pattern) {
			return false
		}
	}

	// All other errors are considered retryable
	// (network timeouts, 502/503, connection refused, etc.)
	return true
}

// ExperienceClient looks up reward experiences in the experience
// catalog. It is read-only: lookups populate reward display fields
// before submission and are never part of the transactional path.
type ExperienceClient interface {
	// GetExperienceByID retrieves a single experience by ID.
	// Returns ErrExperienceNotFound when the catalog has no such entry.
	GetExperienceByID(ctx context.Context, experienceID string) (*domain.Experience, error)

	// ListExperiences retrieves the full catalog, used to build the
	// startup cache.
	ListExperiences(ctx context.Context) ([]*domain.Experience, error)
}
