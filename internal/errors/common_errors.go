package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Domain errors raised by the analysis pipeline
	ErrTypeMissingColumn    ErrorType = "MISSING_COLUMN"
	ErrTypeMissingBaseline  ErrorType = "MISSING_BASELINE"
	ErrTypeDivisionByZero   ErrorType = "DIVISION_BY_ZERO"
	ErrTypeLengthMismatch   ErrorType = "LENGTH_MISMATCH"
	ErrTypeInvalidValue     ErrorType = "INVALID_VALUE"
	ErrTypeInsufficientData ErrorType = "INSUFFICIENT_DATA"

	// Plumbing errors
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a sentinel of the same type. A sentinel is an
// AppError with an empty message; any AppError of that type matches it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Message == "" {
		return t.Type == e.Type
	}
	return t == e
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewMissingColumnError creates an error for a required column that is absent
func NewMissingColumnError(message string) *AppError {
	return NewAppError(ErrTypeMissingColumn, message, nil)
}

// NewMissingBaselineError creates an error for an absent baseline condition
func NewMissingBaselineError(baseline string) *AppError {
	return NewAppError(ErrTypeMissingBaseline, fmt.Sprintf("baseline condition %q not found", baseline), nil).
		WithContext("baseline", baseline)
}

// NewDivisionByZeroError creates an error for a zero denominator
func NewDivisionByZeroError(message string) *AppError {
	return NewAppError(ErrTypeDivisionByZero, message, nil)
}

// NewLengthMismatchError creates an error for misaligned inputs
func NewLengthMismatchError(message string, want, got int) *AppError {
	return NewAppError(ErrTypeLengthMismatch, fmt.Sprintf("%s: want %d, got %d", message, want, got), nil).
		WithContext("want", want).
		WithContext("got", got)
}

// NewInvalidValueError creates an error for values outside a computation's domain
func NewInvalidValueError(message string) *AppError {
	return NewAppError(ErrTypeInvalidValue, message, nil)
}

// NewInsufficientDataError creates an error for inputs too small to compute on
func NewInsufficientDataError(message string) *AppError {
	return NewAppError(ErrTypeInsufficientData, message, nil)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
