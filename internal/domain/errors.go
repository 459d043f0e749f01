package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrValidation       = errors.New("validation error")
	ErrConflict         = errors.New("conflict")
	ErrInvalidReference = errors.New("invalid reference")

	// ErrEmbeddingService matches every failure of the embedding service
	// (unavailable, timeout, unusable response).
	ErrEmbeddingService     = errors.New("embedding service error")
	ErrEmbeddingTextTooLong = errors.New("embedding text too long")

	// ErrUnresolvedName means a find-or-create left a requested name without a row.
	// It signals a persistence bug and is never a user error.
	ErrUnresolvedName = errors.New("name unresolved after find-or-create")
)

// FieldErrorCode classifies a field-level validation failure.
type FieldErrorCode string

const (
	CodeRequired     FieldErrorCode = "required"
	CodeTooLong      FieldErrorCode = "too_long"
	CodeTooManyItems FieldErrorCode = "too_many_items"
	CodeDuplicate    FieldErrorCode = "duplicate_item"
	CodeInvalidUUID  FieldErrorCode = "invalid_uuid"
	CodeInvalidEnum  FieldErrorCode = "invalid_enum"
	CodeInvalidISBN  FieldErrorCode = "invalid_isbn"
	CodeInvalidText  FieldErrorCode = "invalid_text"
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Code    FieldErrorCode
	Message string
	// Value is the offending value (or the limit for too_many_items).
	Value string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Code returns the code of the first field error.
func (e *ValidationError) Code() FieldErrorCode {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Code
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field string, code FieldErrorCode, message, value string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Code: code, Message: message, Value: value}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

func requiredError(field string) *ValidationError {
	return NewValidationError(field, CodeRequired, "required", "")
}

func tooLongError(field string, limit int, value string) *ValidationError {
	return NewValidationError(field, CodeTooLong, fmt.Sprintf("max %d characters", limit), value)
}

func tooManyItemsError(field string, limit int) *ValidationError {
	return NewValidationError(field, CodeTooManyItems, fmt.Sprintf("max %d items", limit), fmt.Sprint(limit))
}

func duplicateItemError(field, value string) *ValidationError {
	return NewValidationError(field, CodeDuplicate, fmt.Sprintf("duplicate item %q", value), value)
}

func invalidUUIDError(field, value string) *ValidationError {
	return NewValidationError(field, CodeInvalidUUID, fmt.Sprintf("invalid UUID %q", value), value)
}

func invalidEnumError(field, value string, allowed []string) *ValidationError {
	return NewValidationError(field, CodeInvalidEnum,
		fmt.Sprintf("invalid value %q (allowed: %s)", value, strings.Join(allowed, ", ")), value)
}

func invalidTextError(field, value string) *ValidationError {
	quoted := strconv.Quote(value)
	return NewValidationError(field, CodeInvalidText, "invalid UTF-8 or NUL byte in "+quoted, quoted)
}

func invalidISBNFieldError(field, value string) *ValidationError {
	return NewValidationError(field, CodeInvalidISBN, fmt.Sprintf("invalid ISBN %q", value), value)
}

// InvalidISBNError is returned when an ISBN fails length, character or checksum checks.
type InvalidISBNError struct {
	// Input is the original, non-normalized value.
	Input string
}

func (e *InvalidISBNError) Error() string {
	return fmt.Sprintf("invalid ISBN: %q", e.Input)
}

func (e *InvalidISBNError) Unwrap() error { return ErrValidation }

// DuplicateISBNError is returned when a book with the same normalized ISBN already exists.
type DuplicateISBNError struct {
	ISBN string
}

func (e *DuplicateISBNError) Error() string {
	return fmt.Sprintf("duplicate ISBN: book with ISBN %s already exists", e.ISBN)
}

func (e *DuplicateISBNError) Unwrap() []error { return []error{ErrConflict, ErrAlreadyExists} }

// InvalidTypeError is returned when the requested book type is not a persisted type.
type InvalidTypeError struct {
	Name       string
	ValidTypes []string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type %q (valid types: %s)", e.Name, strings.Join(e.ValidTypes, ", "))
}

func (e *InvalidTypeError) Unwrap() error { return ErrInvalidReference }

// EmbeddingErrorKind tells why the embedding service failed.
type EmbeddingErrorKind string

const (
	EmbeddingUnavailable EmbeddingErrorKind = "unavailable"
	EmbeddingTimeout     EmbeddingErrorKind = "timeout"
	EmbeddingBadResponse EmbeddingErrorKind = "bad_response"
)

// EmbeddingError is returned by embedding adapters.
type EmbeddingError struct {
	Kind EmbeddingErrorKind
	// StatusCode is the HTTP status when the service answered, 0 otherwise.
	StatusCode int
	Err        error
}

func (e *EmbeddingError) Error() string {
	msg := "embedding service " + string(e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EmbeddingError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrEmbeddingService}
	}
	return []error{ErrEmbeddingService, e.Err}
}

// Retryable reports whether another attempt may succeed.
func (e *EmbeddingError) Retryable() bool {
	return e.Kind == EmbeddingUnavailable || e.Kind == EmbeddingTimeout
}

// IsEmbeddingServiceError reports whether err is a transient embedding-service failure
// (unavailable, timeout, 429 or 5xx). Validation, conflict and reference errors never are.
func IsEmbeddingServiceError(err error) bool {
	var ee *EmbeddingError
	if !errors.As(err, &ee) {
		return false
	}
	return ee.Retryable()
}

// EmbeddingTextTooLongError is returned when the derived embedding text exceeds the limit.
type EmbeddingTextTooLongError struct {
	Length int
	Max    int
}

func (e *EmbeddingTextTooLongError) Error() string {
	return fmt.Sprintf("embedding text too long: %d characters (max %d)", e.Length, e.Max)
}

func (e *EmbeddingTextTooLongError) Unwrap() []error {
	return []error{ErrEmbeddingTextTooLong, ErrEmbeddingService}
}
