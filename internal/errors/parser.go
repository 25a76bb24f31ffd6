package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a safe message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database-layer errors into a response code and message.
// Sensitive driver details stay out of the message; context names the
// resource being acted on (e.g. "filter", "section").
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred"}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations surfaced through the driver
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A " + contextOrResource(context) + " with these values already exists",
		}
	}
	if strings.Contains(errStr, "foreign key constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "A referenced " + contextOrResource(context) + " does not exist",
		}
	}
	if strings.Contains(errStr, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "A required value is missing",
		}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The data store is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Failed to process " + contextOrResource(context) + " request",
	}
}

func notFoundMessage(context string) string {
	if context == "" {
		return "Requested resource not found"
	}
	return "Requested " + context + " not found"
}

func contextOrResource(context string) string {
	if context == "" {
		return "resource"
	}
	return context
}
