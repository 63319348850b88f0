package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated covers every reason a bearer token is refused.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials is returned when an email exists but the secret does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRecipeNotFound is returned for unknown or malformed recipe ids.
	ErrRecipeNotFound = errors.New("recipe not found")
)

// FieldError describes one invalid input field, named by its JSON path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every invalid field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field is among the invalid ones.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// StorageError wraps a backing-store fault. Its detail is for logs only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
