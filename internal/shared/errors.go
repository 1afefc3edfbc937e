// ============================================================================
// internal/shared/errors.go
// Domain error taxonomy surfaced to the gateway
// ============================================================================

package shared

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a domain failure. The gateway maps each code to an
// HTTP status; services never import net/http.
type ErrorCode int

const (
	CodeInternal ErrorCode = iota
	CodeNotFound
	CodeConflict
	CodeValidation
	CodeUnauthenticated
	CodePermissionDenied
)

// FieldErrors carries per-field validation messages in the shape clients
// already depend on: {"field": ["message", ...]}.
type FieldErrors map[string][]string

// Error is the domain error type. Fields is nil except for validation and
// conflict failures, which are field-scoped.
type Error struct {
	Code    ErrorCode
	Message string
	Fields  FieldErrors
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound builds a not-found error.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// Conflict builds a conflict error scoped to a single field.
func Conflict(message, field, fieldMessage string) *Error {
	return &Error{
		Code:    CodeConflict,
		Message: message,
		Fields:  FieldErrors{field: {fieldMessage}},
	}
}

// Validation builds a validation error from field-scoped messages.
func Validation(message string, fields FieldErrors) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

// FieldViolation builds a validation error for a single offending field.
func FieldViolation(message, field, fieldMessage string) *Error {
	return Validation(message, FieldErrors{field: {fieldMessage}})
}

// Unauthenticated builds an invalid-credentials error.
func Unauthenticated(message string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: message}
}

// PermissionDenied builds an authorization error.
func PermissionDenied(message string) *Error {
	return &Error{Code: CodePermissionDenied, Message: message}
}

// Internal wraps an unexpected failure. The cause is logged at the call
// site, not exposed to clients.
func Internal(message string) *Error {
	return &Error{Code: CodeInternal, Message: message}
}

// ComponentExceedsMaximum reports a component grade above its subject
// ceiling, naming the offending component field and the ceiling value.
func ComponentExceedsMaximum(component string, ceiling float64) *Error {
	label := componentLabel(component)
	return FieldViolation(
		fmt.Sprintf("%s grade exceeds maximum allowed for this subject", label),
		component,
		fmt.Sprintf("The %s grade cannot exceed %g", lowerFirst(label), ceiling),
	)
}

// TotalExceedsMaximum reports a derived total above the subject's total
// ceiling.
func TotalExceedsMaximum(ceiling float64) *Error {
	return FieldViolation(
		"Total grade exceeds maximum allowed for this subject",
		"total",
		fmt.Sprintf("The total grade cannot exceed %g", ceiling),
	)
}

func componentLabel(component string) string {
	switch component {
	case "midtermGrade":
		return "Midterm"
	case "practicalGrade":
		return "Practical"
	case "yearsWorkGrade":
		return "Years work"
	case "finalGrade":
		return "Final"
	default:
		return component
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'A' && s[0] <= 'Z' {
		return string(s[0]+32) + s[1:]
	}
	return s
}

// AsError unwraps a domain *Error from any error, or wraps it as internal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err.Error())
}

// IsCode reports whether err is a domain error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
