package apperrors

import (
	"fmt"
	"strings"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one message per malformed request field. It is
// raised before any storage call, so a failed validation is never
// partially applied.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidation(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NotFoundError signals that a referenced entity id does not resolve.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

func NewNotFound(resource string, id int) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError signals a business-rule violation: duplicate unique key,
// illegal state transition, category still in use. Domain guards return
// it directly and orchestrators pass it through unchanged.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflict(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// WrapDBError translates a known PostgreSQL constraint code into the
// taxonomy; anything else stays an uncategorized infrastructure error.
func WrapDBError(message, code string) error {
	switch code {
	case "23505":
		return NewConflict("%s (code: %s)", message, code)
	case "23503":
		return NewConflict("value is still referenced by other resources: %s (code: %s)", message, code)
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}
