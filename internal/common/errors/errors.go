// Package errors provides the tagged error kinds shared by the providers and the HTTP layer.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode identifies an error kind on the wire.
type ErrorCode string

const (
	ErrCodeValidation          ErrorCode = "VALIDATION_ERROR"
	ErrCodePlayerNotFound      ErrorCode = "PLAYER_NOT_FOUND"
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeGeneration          ErrorCode = "GENERATION_ERROR"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// statusByCode is the documented status for every error kind.
var statusByCode = map[ErrorCode]int{
	ErrCodeValidation:          http.StatusUnprocessableEntity,
	ErrCodePlayerNotFound:      http.StatusNotFound,
	ErrCodeUpstreamUnavailable: http.StatusBadGateway,
	ErrCodeGeneration:          http.StatusInternalServerError,
	ErrCodeInternal:            http.StatusInternalServerError,
}

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// HTTPStatus returns the status code documented for the error's kind.
func (e *StandardError) HTTPStatus() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NewValidationError creates a request validation error.
func NewValidationError(details string, fields map[string]interface{}) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "Request validation failed",
		Details:   details,
		Metadata:  fields,
		Timestamp: time.Now().UTC(),
	}
}

// NewPlayerNotFoundError is returned when the stats provider has no match for a name.
func NewPlayerNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodePlayerNotFound,
		Message:   "Player not found",
		Metadata:  map[string]interface{}{"name": name},
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamUnavailableError wraps a transport or decode failure from an upstream API.
func NewUpstreamUnavailableError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamUnavailable,
		Message:   fmt.Sprintf("Upstream service '%s' unavailable", service),
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewGenerationError wraps any failure of the text generation provider.
func NewGenerationError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeneration,
		Message:   "Text generation failed",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// Normalize ensures we always have a StandardError; unknown errors become INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// HasCode reports whether err is a StandardError of the given kind.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}
