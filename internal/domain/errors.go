package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a route or log does not exist upstream.
var ErrNotFound = errors.New("not found")

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every field violation of a request.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a violation for field.
func (v *ValidationErrors) Add(field, msg string) {
	*v = append(*v, &ValidationError{Field: field, Message: msg})
}

// Err returns nil when no violation was recorded.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
