package clips

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrMetadata     = errors.New("source metadata unavailable")
	ErrClipNotFound = errors.New("clip not found")
	ErrForbidden    = errors.New("access to clip forbidden")
)

// ReasonInvalidSourceReference is reported when the source is not an http(s) URL
const ReasonInvalidSourceReference = "invalid_source_reference"

// ValidationError represents a rejected clip request. Nothing is persisted
// when it is returned.
type ValidationError struct {
	Reason  string // stable code, e.g. end_before_start
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements error matching for ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new ValidationError
func NewValidationError(reason, field, message string) *ValidationError {
	return &ValidationError{Reason: reason, Field: field, Message: message}
}

// MetadataError represents a failed metadata lookup. Callers may retry.
type MetadataError struct {
	SourceRef string
	Err       error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("failed to resolve metadata for %s: %v", e.SourceRef, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// Is implements error matching for MetadataError
func (e *MetadataError) Is(target error) bool {
	return target == ErrMetadata
}
