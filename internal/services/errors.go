package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrValidation is returned when input fails the format rules
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict is returned when a write would duplicate a unique value
	ErrConflict = errors.New("conflict")
	// ErrNotFound is returned when a referenced entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller's role does not allow the operation
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries per-field messages. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// DomainError is a sentinel error with a client facing message
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func conflict(message string) error {
	return &DomainError{Kind: ErrConflict, Message: message}
}

func notFound(message string) error {
	return &DomainError{Kind: ErrNotFound, Message: message}
}

func forbidden(message string) error {
	return &DomainError{Kind: ErrForbidden, Message: message}
}

// Message returns the client facing message of a domain error, or fallback
func Message(err error, fallback string) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return fallback
}
