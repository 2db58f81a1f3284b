// Package errors provides structured error types for blueprint tooling.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes are grouped by the layer that produces them:
//   - Transcoding: INVALID_VERSION, BASE64_DECODE, ZLIB_*, JSON_*
//   - Translation: NON_CONTIGUOUS_IDS, MISSING_FIELD
//   - Graph editing: INVALID_ID, DUPLICATE_IDS
//   - Ambient: INVALID_INPUT, INVALID_CONFIG, NOT_FOUND, INTERNAL
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateIDs, "id %d listed twice", id)
//	if errors.Is(err, errors.ErrCodeDuplicateIDs) {
//	    // Handle programmer error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeBase64Decode, cause, "base64 decoding of blueprint failed")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Transcoding errors
	ErrCodeInvalidVersion  Code = "INVALID_VERSION"
	ErrCodeBase64Decode    Code = "BASE64_DECODE"
	ErrCodeZlibInflate     Code = "ZLIB_INFLATE"
	ErrCodeZlibDeflate     Code = "ZLIB_DEFLATE"
	ErrCodeJSONDecode      Code = "JSON_DECODE"
	ErrCodeJSONDeserialize Code = "JSON_DESERIALIZE"
	ErrCodeJSONEncode      Code = "JSON_ENCODE"
	ErrCodeJSONSerialize   Code = "JSON_SERIALIZE"

	// Translation errors
	ErrCodeNonContiguousIDs Code = "NON_CONTIGUOUS_IDS"
	ErrCodeMissingField     Code = "MISSING_FIELD"

	// Graph editing errors
	ErrCodeInvalidID    Code = "INVALID_ID"
	ErrCodeDuplicateIDs Code = "DUPLICATE_IDS"

	// Ambient errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
)

// Coder is implemented by error types that carry extra fields but still
// belong to a code, such as blueprint.InvalidIDError.
type Coder interface {
	Code() Code
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
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

// Is reports whether the outermost coded error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Both *Error and any Coder in the chain are recognized; the outermost wins.
// Returns empty string if no coded error is found.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case Coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by bad input rather than by
// an internal failure. Uncoded errors are treated as internal.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case "", ErrCodeInternal, ErrCodeJSONEncode, ErrCodeJSONSerialize, ErrCodeZlibDeflate:
		return false
	}
	return true
}
