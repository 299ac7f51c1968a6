// Package gen generates Zod validation schemas from a loaded data model.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidModel indicates a model definition error.
	ErrInvalidModel = errors.New("zodgen: invalid model")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("zodgen: missing configuration")
)

// ModelError represents a model definition error.
type ModelError struct {
	Entity  string // Entity name
	Field   string // Field name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	var b strings.Builder
	b.WriteString("zodgen: model error")
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ModelError.
func (e *ModelError) Is(target error) bool {
	return target == ErrInvalidModel
}

// NewModelError creates a new ModelError.
func NewModelError(entity, field, message string, cause error) *ModelError {
	return &ModelError{
		Entity:  entity,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("zodgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("zodgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}
