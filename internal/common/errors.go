package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoActiveSession = errors.New("no active session. Run 'aipo login' first")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrRateLimited     = errors.New("rate limited")
	ErrServer          = errors.New("server error")
	ErrTransport       = errors.New("transport failure")
	ErrUnexpected      = errors.New("unexpected response")
)

// ErrorKind is the failure category of a request.
type ErrorKind int

const (
	UnknownFailure ErrorKind = iota
	TransportFailure
	AuthFailure
	PermissionFailure
	NotFound
	ValidationFailure
	RateLimited
	ServerFailure
)

func (k ErrorKind) String() string {
	switch k {
	case TransportFailure:
		return "transport_failure"
	case AuthFailure:
		return "auth_failure"
	case PermissionFailure:
		return "permission_failure"
	case NotFound:
		return "not_found"
	case ValidationFailure:
		return "validation_failure"
	case RateLimited:
		return "rate_limited"
	case ServerFailure:
		return "server_failure"
	default:
		return "unknown_failure"
	}
}

// Sentinel returns the sentinel error matched by errors.Is for this kind.
func (k ErrorKind) Sentinel() error {
	switch k {
	case TransportFailure:
		return ErrTransport
	case AuthFailure:
		return ErrUnauthorized
	case PermissionFailure:
		return ErrForbidden
	case NotFound:
		return ErrNotFound
	case ValidationFailure:
		return ErrValidation
	case RateLimited:
		return ErrRateLimited
	case ServerFailure:
		return ErrServer
	default:
		return ErrUnexpected
	}
}

// ClassifyStatus maps a response status to its failure category. A status of
// zero means no response was received.
func ClassifyStatus(status int) ErrorKind {
	switch status {
	case 0:
		return TransportFailure
	case http.StatusUnauthorized:
		return AuthFailure
	case http.StatusForbidden:
		return PermissionFailure
	case http.StatusNotFound:
		return NotFound
	case http.StatusUnprocessableEntity:
		return ValidationFailure
	case http.StatusTooManyRequests:
		return RateLimited
	case http.StatusInternalServerError:
		return ServerFailure
	default:
		return UnknownFailure
	}
}

// FieldError is a single entry of a structured validation failure.
type FieldError struct {
	Location []any  `json:"loc,omitempty" yaml:"loc,omitempty"`
	Message  string `json:"msg" yaml:"msg"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
}

// APIError is returned for every failed request, after the failure handler ran.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Method     string
	Path       string
	RequestID  string

	// Detail is the backend's string detail, if it sent one.
	Detail string
	// Fields is populated for validation failures carrying a structured body.
	Fields []FieldError
	// Message is the human readable text surfaced to the user.
	Message string

	Err error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Kind, e.Err)
	}
	if len(e.Message) > 0 {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Kind)
}

func (e *APIError) Unwrap() []error {
	errs := []error{e.Kind.Sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}
