// Package errors provides typed errors for Compadre. Each type carries
// the identifier that failed, plus a stable code for callers that
// dispatch on error kind rather than message text.
package errors

import (
	"fmt"
)

// CompadreError is the base interface for all Compadre errors
type CompadreError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

type baseError struct {
	code    string
	message string
	cause   error
}

func newBase(code, message string, cause error) baseError {
	return baseError{code: code, message: message, cause: cause}
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// TransformError represents errors raised while applying a word transform
type TransformError struct {
	baseError
	Transform string
}

// NewTransformError creates a new transform error
func NewTransformError(transform string, message string, cause error) *TransformError {
	return &TransformError{baseError: newBase("TRANSFORM_ERROR", message, cause), Transform: transform}
}

// GeneratorError represents errors raised by a completion generator
type GeneratorError struct {
	baseError
	Generator string
}

// NewGeneratorError creates a new generator error
func NewGeneratorError(generator string, message string, cause error) *GeneratorError {
	return &GeneratorError{baseError: newBase("GENERATOR_ERROR", message, cause), Generator: generator}
}

// ExclusionError represents errors in exclusion rule patterns
type ExclusionError struct {
	baseError
	Pattern string
}

// NewExclusionError creates a new exclusion error
func NewExclusionError(pattern string, message string, cause error) *ExclusionError {
	return &ExclusionError{baseError: newBase("EXCLUSION_ERROR", message, cause), Pattern: pattern}
}

// SourceError represents errors loading a completion source
type SourceError struct {
	baseError
	Source string
}

// NewSourceError creates a new source error
func NewSourceError(source string, message string, cause error) *SourceError {
	return &SourceError{baseError: newBase("SOURCE_ERROR", message, cause), Source: source}
}

// RegistryError represents errors during remote source downloads
type RegistryError struct {
	baseError
	URL string
}

// NewRegistryError creates a new registry error
func NewRegistryError(url string, message string, cause error) *RegistryError {
	return &RegistryError{baseError: newBase("REGISTRY_ERROR", message, cause), URL: url}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{baseError: newBase("CONFIG_ERROR", message, cause), Path: path}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{baseError: newBase("VALIDATION_ERROR", message, cause), Field: field}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{baseError: newBase("NOT_FOUND", message, nil), Resource: resource}
}

// AlreadyExistsError represents errors when a resource already exists
type AlreadyExistsError struct {
	baseError
	Resource string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource string, message string) *AlreadyExistsError {
	return &AlreadyExistsError{baseError: newBase("ALREADY_EXISTS", message, nil), Resource: resource}
}

// ConditionError represents errors during condition evaluation
type ConditionError struct {
	baseError
	Source string
}

// NewConditionError creates a new condition error
func NewConditionError(source string, message string, cause error) *ConditionError {
	return &ConditionError{baseError: newBase("CONDITION_ERROR", message, cause), Source: source}
}
