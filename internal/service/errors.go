package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mauv0809/rally-stats/internal/club"
)

// ErrNotFound matches every NotFoundError through errors.Is.
var ErrNotFound = club.ErrNotFound

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func notFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// lookup converts a store ErrNotFound into a NotFoundError for resource.
func lookup(err error, resource, id string) error {
	if errors.Is(err, club.ErrNotFound) {
		return notFound(resource, id)
	}
	return err
}

// FieldError is a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rejected field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Invalid builds a ValidationError for one field.
func Invalid(field, message string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
