package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Rule-error kinds. Every failure a service returns unwraps to exactly one of
// these, so transport code can map kinds to statuses with errors.Is without
// inspecting messages.
var (
	ErrValidation    = errors.New("validation failed")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrLimitExceeded = errors.New("limit exceeded")
)

type ruleError struct {
	kind error
	msg  string
}

func (e *ruleError) Error() string { return e.msg }

func (e *ruleError) Unwrap() error { return e.kind }

// Forbidden reports that the caller lacks the relationship or role the
// operation requires.
func Forbidden(msg string) error {
	return &ruleError{kind: ErrForbidden, msg: msg}
}

// NotFound reports that a referenced entity does not exist or was
// concurrently deleted.
func NotFound(msg string) error {
	return &ruleError{kind: ErrNotFound, msg: msg}
}

// Conflict reports that a uniqueness or state constraint would be violated.
func Conflict(msg string) error {
	return &ruleError{kind: ErrConflict, msg: msg}
}

// LimitExceeded reports that a capacity or count ceiling was reached.
func LimitExceeded(msg string) error {
	return &ruleError{kind: ErrLimitExceeded, msg: msg}
}

// FieldErrors maps form field names to human-readable messages.
type FieldErrors map[string]string

// ValidationError carries the per-field messages for a rejected input. No
// write happens when one is returned.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a single-field validation error.
func Invalid(field, msg string) error {
	return &ValidationError{Fields: FieldErrors{field: msg}}
}

// InvalidFields builds a validation error from a field-error map. Empty
// messages are dropped; nil is returned when nothing remains.
func InvalidFields(fields FieldErrors) error {
	cleaned := make(FieldErrors, len(fields))
	for field, msg := range fields {
		if msg != "" {
			cleaned[field] = msg
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	return &ValidationError{Fields: cleaned}
}
