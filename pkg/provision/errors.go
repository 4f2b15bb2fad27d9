package provision

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"
)

// ErrorType represents different categories of provisioning errors
type ErrorType string

const (
	ErrorTypeAuth       ErrorType = "authentication"
	ErrorTypePermission ErrorType = "permission"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeConfig     ErrorType = "configuration"
	ErrorTypeEncoding   ErrorType = "encoding"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// ProvisionError represents a structured error from provisioning operations
type ProvisionError struct {
	Type     ErrorType `json:"type"`
	Message  string    `json:"message"`
	Cause    error     `json:"-"`
	Resource string    `json:"resource,omitempty"`
}

// Error implements the error interface
func (e *ProvisionError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Resource, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *ProvisionError) Unwrap() error {
	return e.Cause
}

// NewProvisionError creates a new ProvisionError with the specified type and message
func NewProvisionError(errorType ErrorType, message string, cause error) *ProvisionError {
	return &ProvisionError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// IsErrorType reports whether err carries the given provisioning error type
func IsErrorType(err error, errorType ErrorType) bool {
	var pErr *ProvisionError
	if errors.As(err, &pErr) {
		return pErr.Type == errorType
	}
	return false
}

// WrapAPIError wraps a GitHub API error into our structured error type.
// There is deliberately no retry or backoff behind this: a failed call
// fails the current repository and the batch moves on.
func WrapAPIError(err error, resource string) *ProvisionError {
	if err == nil {
		return nil
	}

	// If it's already a ProvisionError, return as-is
	var pErr *ProvisionError
	if errors.As(err, &pErr) {
		if pErr.Resource == "" {
			pErr.Resource = resource
		}
		return pErr
	}

	// Handle GitHub API errors
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		return parseAPIError(ghErr, resource)
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &ProvisionError{
			Type:     ErrorTypeRateLimit,
			Message:  fmt.Sprintf("rate limit exceeded, resets at %v", rateErr.Rate.Reset.Time),
			Cause:    err,
			Resource: resource,
		}
	}

	// Handle network/connection errors
	if isNetworkError(err) {
		return &ProvisionError{
			Type:     ErrorTypeNetwork,
			Message:  "network error occurred, check your connection",
			Cause:    err,
			Resource: resource,
		}
	}

	return &ProvisionError{
		Type:     ErrorTypeUnknown,
		Message:  err.Error(),
		Cause:    err,
		Resource: resource,
	}
}

// parseAPIError maps GitHub API error responses into structured errors
func parseAPIError(ghErr *github.ErrorResponse, resource string) *ProvisionError {
	baseErr := &ProvisionError{
		Resource: resource,
		Cause:    ghErr,
	}

	switch ghErr.Response.StatusCode {
	case http.StatusUnauthorized:
		baseErr.Type = ErrorTypeAuth
		baseErr.Message = "authentication failed, check your GitHub token"

	case http.StatusForbidden:
		if strings.Contains(ghErr.Message, "rate limit") {
			baseErr.Type = ErrorTypeRateLimit
			baseErr.Message = "GitHub API rate limit exceeded"
		} else {
			baseErr.Type = ErrorTypePermission
			baseErr.Message = "insufficient permissions, the token may lack the repo scope"
		}

	case http.StatusNotFound:
		baseErr.Type = ErrorTypeNotFound
		baseErr.Message = "resource not found, verify the name and your access"

	case http.StatusConflict:
		baseErr.Type = ErrorTypeConflict
		baseErr.Message = "resource conflict occurred"

	case http.StatusUnprocessableEntity:
		baseErr.Type = ErrorTypeValidation
		baseErr.Message = "validation failed"

		if len(ghErr.Errors) > 0 {
			var details []string
			for _, e := range ghErr.Errors {
				if e.Field != "" {
					details = append(details, fmt.Sprintf("%s: %s", e.Field, e.Message))
				} else {
					details = append(details, e.Message)
				}
			}
			baseErr.Message = fmt.Sprintf("validation failed: %s", strings.Join(details, "; "))
		}

		// A create rejected because the name is taken surfaces as 422
		if strings.Contains(strings.ToLower(ghErr.Message), "already exists") ||
			strings.Contains(baseErr.Message, "already exists") {
			baseErr.Type = ErrorTypeConflict
			baseErr.Message = "name already exists on this account"
		}

	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		baseErr.Type = ErrorTypeNetwork
		baseErr.Message = "GitHub API is temporarily unavailable"

	default:
		baseErr.Type = ErrorTypeUnknown
		baseErr.Message = ghErr.Message
	}

	return baseErr
}

// isNetworkError checks if an error is a network-related error
func isNetworkError(err error) bool {
	errStr := strings.ToLower(err.Error())
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"connection timeout",
		"network is unreachable",
		"no such host",
		"timeout",
		"dial tcp",
		"i/o timeout",
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// ValidationError represents a desired-state validation error
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation error for field '%s' (value: %s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	if len(e) == 1 {
		return e[0].Error()
	}

	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed with %d errors: %s", len(e), strings.Join(messages, "; "))
}

// Add adds a validation error to the collection
func (e *ValidationErrors) Add(field, value, message string) {
	*e = append(*e, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}
