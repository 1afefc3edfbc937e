package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"campusgrades/internal/shared"
)

// JSONResponse structure for successful responses
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSONError structure for error responses. Errors carries the per-field
// messages of validation and conflict failures.
type JSONError struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Errors  shared.FieldErrors `json:"errors,omitempty"`
}

// WriteJSON is a helper to write JSON responses wrapped in the standard
// success envelope.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := JSONResponse{Success: true, Data: payload}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

// WriteJSONError is a helper to write standardized error JSON responses.
func WriteJSONError(w http.ResponseWriter, status int, message string) {
	WriteJSONFieldErrors(w, status, message, nil)
}

// WriteJSONFieldErrors writes an error response with field-scoped messages.
func WriteJSONFieldErrors(w http.ResponseWriter, status int, message string, fields shared.FieldErrors) {
	log.Printf("HTTP Error %d: %s", status, message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResponse := JSONError{
		Success: false,
		Message: message,
		Errors:  fields,
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Printf("Error writing JSON error response: %v", err)
	}
}

// HandleServiceError translates domain errors into HTTP responses. This is
// the single error mapping for the whole gateway; handlers never pick
// status codes themselves.
func HandleServiceError(w http.ResponseWriter, err error) {
	domainErr := shared.AsError(err)

	switch domainErr.Code {
	case shared.CodeNotFound:
		WriteJSONFieldErrors(w, http.StatusNotFound, domainErr.Message, domainErr.Fields)
	case shared.CodeConflict:
		WriteJSONFieldErrors(w, http.StatusConflict, domainErr.Message, domainErr.Fields)
	case shared.CodeValidation:
		WriteJSONFieldErrors(w, http.StatusUnprocessableEntity, domainErr.Message, domainErr.Fields)
	case shared.CodeUnauthenticated:
		WriteJSONFieldErrors(w, http.StatusUnauthorized, domainErr.Message, domainErr.Fields)
	case shared.CodePermissionDenied:
		WriteJSONFieldErrors(w, http.StatusForbidden, domainErr.Message, domainErr.Fields)
	default:
		WriteJSONFieldErrors(w, http.StatusInternalServerError, domainErr.Message, domainErr.Fields)
	}
}

// ExtractToken extracts the token from the Authorization header (Bearer <token>)
func ExtractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	// Expect header: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

// NewValidator builds the request validator. Violations report the JSON
// field name, not the Go struct field name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeAndValidate decodes the request body into dst and runs the
// validator over it, returning a field-scoped validation error on failure.
func DecodeAndValidate(r *http.Request, v *validator.Validate, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return shared.Validation("Invalid request body", nil)
	}

	err := v.Struct(dst)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return shared.Validation("Invalid request body", nil)
	}

	fields := shared.FieldErrors{}
	for _, violation := range violations {
		field := violation.Field()
		fields[field] = append(fields[field], violationMessage(violation))
	}
	return shared.Validation("The given data was invalid", fields)
}

func violationMessage(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", v.Field())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address", v.Field())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s", v.Field(), v.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s", v.Field(), v.Param())
	case "max":
		return fmt.Sprintf("The %s field may not be greater than %s", v.Field(), v.Param())
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s", v.Field(), v.Param())
	default:
		return fmt.Sprintf("The %s field is invalid", v.Field())
	}
}
