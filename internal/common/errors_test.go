package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected ErrorKind
	}{
		{0, TransportFailure},
		{http.StatusUnauthorized, AuthFailure},
		{http.StatusForbidden, PermissionFailure},
		{http.StatusNotFound, NotFound},
		{http.StatusUnprocessableEntity, ValidationFailure},
		{http.StatusTooManyRequests, RateLimited},
		{http.StatusInternalServerError, ServerFailure},
		{http.StatusBadRequest, UnknownFailure},
		{http.StatusBadGateway, UnknownFailure},
		{http.StatusConflict, UnknownFailure},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyStatus(tt.status))
		})
	}
}

func TestDescribeFailure(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrorKind
		detail   string
		fields   []FieldError
		expected string
	}{
		{"network", TransportFailure, "", nil, MessageNetworkError},
		{"session expired", AuthFailure, "Could not validate credentials", nil, MessageSessionExpired},
		{"forbidden", PermissionFailure, "", nil, MessageAccessDenied},
		{"not found", NotFound, "Prompt not found", nil, MessageNotFound},
		{"validation without fields", ValidationFailure, "", nil, MessageValidation},
		{
			name: "validation with fields",
			kind: ValidationFailure,
			fields: []FieldError{
				{Location: []any{"body", "email"}, Message: "value is not a valid email address"},
				{Location: []any{"body", "password"}, Message: "field required"},
			},
			expected: "value is not a valid email address, field required",
		},
		{"rate limited", RateLimited, "", nil, MessageRateLimited},
		{"server", ServerFailure, "boom", nil, MessageServerError},
		{"unknown with detail", UnknownFailure, "Email already registered", nil, "Email already registered"},
		{"unknown without detail", UnknownFailure, "  ", nil, MessageUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DescribeFailure(tt.kind, tt.detail, tt.fields))
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("fetch prompts: %w", &APIError{
		Kind:   TransportFailure,
		Method: http.MethodGet,
		Path:   "/prompts",
		Err:    cause,
	})

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.True(t, IsKind(err, TransportFailure))
	assert.False(t, IsKind(err, AuthFailure))
	assert.False(t, IsKind(errors.New("plain"), TransportFailure))
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{
		Kind:       NotFound,
		StatusCode: http.StatusNotFound,
		Method:     http.MethodGet,
		Path:       "/prompts/7",
		Message:    MessageNotFound,
	}

	assert.Equal(t, "GET /prompts/7: 404 not_found: Resource not found.", err.Error())
}
