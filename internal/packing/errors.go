package packing

import "fmt"

// ValidationError signals that input violated a static constraint before
// ever reaching the packing loop. The core assumes validated input; this
// type exists so boundary layers (internal/config) can produce a value the
// caller can type-switch on instead of string-matching.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("validation error: %s", e.Message) }

// NewValidationError wraps a message as a ValidationError.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConfigurationError signals a programmer error: an unimplemented selector
// strategy or an inconsistently constructed GroupedItem. Unlike
// PlacementRejected, this is never retried.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return fmt.Sprintf("configuration error: %s", e.Message) }

// NewConfigurationError wraps a message as a ConfigurationError.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}
