package common

import "strings"

const (
	MessageSessionExpired  = "Your session has expired. Please log in again."
	MessageAccessDenied    = "Access denied. You don't have permission to perform this action."
	MessageNotFound        = "Resource not found."
	MessageValidation      = "Validation error. Please check your input."
	MessageRateLimited     = "Too many requests. Please try again later."
	MessageServerError     = "Server error. Please try again later."
	MessageUnexpected      = "An unexpected error occurred."
	MessageNetworkError    = "Network error. Please check your connection."
	validationMessageJoint = ", "
)

// DescribeFailure returns the text shown to the user for a failed request.
func DescribeFailure(kind ErrorKind, detail string, fields []FieldError) string {
	switch kind {
	case TransportFailure:
		return MessageNetworkError
	case AuthFailure:
		return MessageSessionExpired
	case PermissionFailure:
		return MessageAccessDenied
	case NotFound:
		return MessageNotFound
	case ValidationFailure:
		if len(fields) == 0 {
			return MessageValidation
		}
		messages := make([]string, 0, len(fields))
		for _, field := range fields {
			messages = append(messages, field.Message)
		}
		return strings.Join(messages, validationMessageJoint)
	case RateLimited:
		return MessageRateLimited
	case ServerFailure:
		return MessageServerError
	default:
		if len(strings.TrimSpace(detail)) > 0 {
			return detail
		}
		return MessageUnexpected
	}
}
