package errors

import (
	"errors"
)

// Sentinels for errors.Is. Each matches any AppError of its type.
var (
	ErrMissingColumn    = &AppError{Type: ErrTypeMissingColumn}
	ErrMissingBaseline  = &AppError{Type: ErrTypeMissingBaseline}
	ErrDivisionByZero   = &AppError{Type: ErrTypeDivisionByZero}
	ErrLengthMismatch   = &AppError{Type: ErrTypeLengthMismatch}
	ErrInvalidValue     = &AppError{Type: ErrTypeInvalidValue}
	ErrInsufficientData = &AppError{Type: ErrTypeInsufficientData}
	ErrParsing          = &AppError{Type: ErrTypeParsing}
	ErrStorage          = &AppError{Type: ErrTypeStorage}
	ErrValidation       = &AppError{Type: ErrTypeValidation}
	ErrConfig           = &AppError{Type: ErrTypeConfig}
)

// TypeOf returns the ErrorType of the first AppError in err's chain, or the
// empty string when there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsDomainError reports whether err was raised by one of the analysis
// computations rather than by I/O or configuration.
func IsDomainError(err error) bool {
	switch TypeOf(err) {
	case ErrTypeMissingColumn, ErrTypeMissingBaseline, ErrTypeDivisionByZero,
		ErrTypeLengthMismatch, ErrTypeInvalidValue, ErrTypeInsufficientData:
		return true
	}
	return false
}
