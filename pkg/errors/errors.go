// Package errors defines the coded errors featuremap returns from parsing,
// layout, storage and rendering.
//
// Every failure surfaced to a user carries a [Code]. The CLI and the HTTP
// API classify errors by code alone: [IsClientError] codes become exit
// status 2 or a 4xx response, [IsNotFound] codes a 404, and everything else
// an internal failure.
//
// LABEL_OVERFLOW is never returned as an error value. The layout engine
// attaches it to the non-fatal warnings of a plan.
//
//	if errors.Is(err, errors.ErrCodeInvalidCropRange) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout and record errors
	ErrCodeOutOfRangeFeature Code = "OUT_OF_RANGE_FEATURE"
	ErrCodeLabelOverflow     Code = "LABEL_OVERFLOW"
	ErrCodeInvalidCropRange  Code = "INVALID_CROP_RANGE"
	ErrCodeInvalidTopology   Code = "INVALID_TOPOLOGY"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidTheme  Code = "INVALID_THEME"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeParse         Code = "PARSE_ERROR"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeRecordNotFound Code = "RECORD_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err's message without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

var (
	clientCodes = map[Code]bool{
		ErrCodeOutOfRangeFeature: true,
		ErrCodeInvalidCropRange:  true,
		ErrCodeInvalidTopology:   true,
		ErrCodeInvalidInput:      true,
		ErrCodeInvalidFormat:     true,
		ErrCodeInvalidTheme:      true,
		ErrCodeInvalidName:       true,
		ErrCodeParse:             true,
	}
	notFoundCodes = map[Code]bool{
		ErrCodeNotFound:       true,
		ErrCodeRecordNotFound: true,
		ErrCodeFileNotFound:   true,
	}
)

// IsClientError reports whether err was caused by bad input rather than by
// the system.
func IsClientError(err error) bool { return clientCodes[GetCode(err)] }

// IsNotFound reports whether err carries one of the *_NOT_FOUND codes.
func IsNotFound(err error) bool { return notFoundCodes[GetCode(err)] }
