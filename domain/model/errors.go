package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrClusterNotFound     = errors.New("cluster not found")
	ErrClusterInvalid      = errors.New("cluster invalid")
	ErrIntegrationNotFound = errors.New("integration not found")
	ErrIntegrationInvalid  = errors.New("integration invalid")

	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")

	// Collaborator signals. A collaborator never returns a nil payload with a
	// nil error; absence is always one of these.
	ErrOperationUnavailable     = errors.New("operation unavailable")
	ErrClusterDetailUnavailable = errors.New("cluster detail unavailable")
	ErrControlPlaneUnreachable  = errors.New("control plane unreachable")
	ErrTokenNotFound            = errors.New("token not found")
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError is returned by the persistence substrate when an entity
// violates its constraints.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

// Add records an invalid field.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// OrNil returns e when at least one field was recorded, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return fmt.Sprintf("%s invalid: %s", e.Entity, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
