package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNotFound indicates that an upstream source has no record for the identifier.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that the input data is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedIdentifier indicates that the identifier matched no known kind.
	ErrUnsupportedIdentifier = errors.New("unsupported identifier")

	// ErrSourceUnavailable indicates that no enabled source serves the identifier kind.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRateLimited indicates that the request was rate limited.
	ErrRateLimited = errors.New("rate limited")
)

// UnsupportedIdentifierMessage is reported to users whose input matched no kind.
const UnsupportedIdentifierMessage = "Unsupported identifier format. Please use DOI, PMID, S2CID, Google Books URL, or a Web URL."

// UnsupportedIdentifierError is returned for input classified as KindUnknown.
type UnsupportedIdentifierError struct {
	Input string
}

// Error implements the error interface.
func (e *UnsupportedIdentifierError) Error() string {
	return UnsupportedIdentifierMessage
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *UnsupportedIdentifierError) Unwrap() error {
	return ErrUnsupportedIdentifier
}

// ValidationError represents a validation error for a specific field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NotFoundError provides details about an identifier an upstream could not resolve.
// When Message is set it is reported verbatim.
type NotFoundError struct {
	Entity  string
	ID      string
	Message string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ExternalAPIError provides details about an external API error.
type ExternalAPIError struct {
	Source     string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Source, e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *ExternalAPIError) Unwrap() error {
	return e.Cause
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{
		Entity: entity,
		ID:     id,
	}
}

// NewNotFoundMessage creates a NotFoundError that reports message verbatim.
func NewNotFoundMessage(entity, id, message string) *NotFoundError {
	return &NotFoundError{
		Entity:  entity,
		ID:      id,
		Message: message,
	}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewExternalAPIError creates a new ExternalAPIError.
func NewExternalAPIError(source string, statusCode int, message string, cause error) *ExternalAPIError {
	return &ExternalAPIError{
		Source:     source,
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}
