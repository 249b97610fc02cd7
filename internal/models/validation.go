package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is the sentinel all validation failures match with errors.Is.
var ErrValidation = errors.New("validation failed")

// FieldError describes a single field violation.
type FieldError struct {
	Field   string `json:"field" example:"budget"`
	Message string `json:"message" example:"budget must be zero or positive"`
}

// ValidationError accumulates field violations for one entity. Checks never
// stop at the first violation, so callers can report all of them at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Message)
	}

	return strings.Join(messages, "; ")
}

// Is makes errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Messages returns one human readable message per violated field.
func (e *ValidationError) Messages() []string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Message)
	}

	return messages
}

// Add records a violation of the named field.
func (e *ValidationError) Add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// orNil returns the error, or nil when no field was violated. Returning a
// plain nil avoids a non-nil error interface wrapping a nil pointer.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}

	return e
}
