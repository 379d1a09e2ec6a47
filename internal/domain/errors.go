package domain

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidID is returned when an identifier does not have the object id shape
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound is returned when a well-formed identifier matches no record
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when a request carries no authenticated session
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAuthFailed covers every failure of the identity provider handshake
	ErrAuthFailed = errors.New("authentication failed")
)

// FieldError describes one failing field rule
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists field failures in the order the rules were declared
type ValidationError struct {
	Fields []FieldError
}

// Error implements error
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a field failure
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}
