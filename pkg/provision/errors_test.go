package provision

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/go-github/v66/github"
)

func apiError(status int, message string) *github.ErrorResponse {
	return &github.ErrorResponse{
		Response: &http.Response{StatusCode: status},
		Message:  message,
	}
}

func TestWrapAPIErrorNil(t *testing.T) {
	assert.Nil(t, WrapAPIError(nil, "repository acme/svc-a"))
}

func TestWrapAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ErrorType
	}{
		{
			name:     "unauthorized",
			err:      apiError(http.StatusUnauthorized, "Bad credentials"),
			wantType: ErrorTypeAuth,
		},
		{
			name:     "forbidden",
			err:      apiError(http.StatusForbidden, "Resource not accessible"),
			wantType: ErrorTypePermission,
		},
		{
			name:     "forbidden rate limit",
			err:      apiError(http.StatusForbidden, "API rate limit exceeded"),
			wantType: ErrorTypeRateLimit,
		},
		{
			name:     "not found",
			err:      apiError(http.StatusNotFound, "Not Found"),
			wantType: ErrorTypeNotFound,
		},
		{
			name:     "conflict",
			err:      apiError(http.StatusConflict, "Conflict"),
			wantType: ErrorTypeConflict,
		},
		{
			name:     "unprocessable",
			err:      apiError(http.StatusUnprocessableEntity, "Validation Failed"),
			wantType: ErrorTypeValidation,
		},
		{
			name:     "server error",
			err:      apiError(http.StatusBadGateway, "Bad Gateway"),
			wantType: ErrorTypeNetwork,
		},
		{
			name:     "network",
			err:      fmt.Errorf("dial tcp: connection refused"),
			wantType: ErrorTypeNetwork,
		},
		{
			name:     "unknown",
			err:      errors.New("something odd"),
			wantType: ErrorTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapAPIError(tt.err, "repository acme/svc-a")
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.wantType, wrapped.Type)
			assert.Equal(t, "repository acme/svc-a", wrapped.Resource)
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}
}

func TestWrapAPIErrorNameTakenIsConflict(t *testing.T) {
	ghErr := apiError(http.StatusUnprocessableEntity, "Repository creation failed.")
	ghErr.Errors = []github.Error{
		{Field: "name", Message: "name already exists on this account"},
	}

	wrapped := WrapAPIError(ghErr, "repository acme/svc-a")
	assert.Equal(t, ErrorTypeConflict, wrapped.Type)
}

func TestWrapAPIErrorKeepsExistingProvisionError(t *testing.T) {
	original := NewProvisionError(ErrorTypeConfig, "pipeline type is not defined", nil)

	wrapped := WrapAPIError(original, "repository acme/svc-a")
	assert.Same(t, original, wrapped)
	assert.Equal(t, "repository acme/svc-a", wrapped.Resource)
}

func TestProvisionErrorFormatting(t *testing.T) {
	withResource := &ProvisionError{Type: ErrorTypeConflict, Message: "taken", Resource: "repository acme/svc-a"}
	assert.Equal(t, "conflict error for repository acme/svc-a: taken", withResource.Error())

	bare := &ProvisionError{Type: ErrorTypeAuth, Message: "bad token"}
	assert.Equal(t, "authentication error: bad token", bare.Error())
}

func TestIsErrorType(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewProvisionError(ErrorTypeConflict, "taken", nil))

	assert.True(t, IsErrorType(err, ErrorTypeConflict))
	assert.False(t, IsErrorType(err, ErrorTypeAuth))
	assert.False(t, IsErrorType(errors.New("plain"), ErrorTypeConflict))
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.False(t, errs.HasErrors())

	errs.Add("name", "bad name", "invalid characters")
	errs.Add("status", "", "status is required")

	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs.Error(), "2 errors")
	assert.Contains(t, errs.Error(), "invalid characters")
}
