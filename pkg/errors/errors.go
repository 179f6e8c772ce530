// Package errors provides structured error types for the rnaimport importer.
//
// Every import failure is a single descriptive error with a human-readable
// message (for example `Required attribute "data-index" is missing.`). The
// attached [Code] lets callers branch on the failure category without parsing
// messages; most callers simply display [UserMessage] and abort the import.
//
// # Error Codes
//
//   - MISSING_ATTRIBUTE: a required attribute is absent on a matched element
//   - UNRECOGNIZED_*: a value is present but outside its closed vocabulary
//   - MALFORMED_TRANSFORM: a transform string is unparseable or has bad arity
//   - MALFORMED_DOCUMENT: the input is not a well-formed element tree
//   - DANGLING_REFERENCE: a base pair or label points at a missing nucleotide
//   - INVALID_INPUT / INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.MissingAttribute("data-index")
//	if errors.Is(err, errors.ErrCodeMissingAttribute) {
//	    // ...
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedDocument, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the import taxonomy.
const (
	ErrCodeMissingAttribute         Code = "MISSING_ATTRIBUTE"
	ErrCodeUnrecognizedSemanticType Code = "UNRECOGNIZED_SEMANTIC_TYPE"
	ErrCodeUnrecognizedSymbol       Code = "UNRECOGNIZED_SYMBOL"
	ErrCodeUnrecognizedBasePairType Code = "UNRECOGNIZED_BASE_PAIR_TYPE"
	ErrCodeMalformedTransform       Code = "MALFORMED_TRANSFORM"
	ErrCodeMalformedDocument        Code = "MALFORMED_DOCUMENT"
	ErrCodeDanglingReference        Code = "DANGLING_REFERENCE"

	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

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

// MissingAttribute reports a required attribute that is absent.
func MissingAttribute(name string) *Error {
	return New(ErrCodeMissingAttribute, "Required attribute %q is missing.", name)
}

// UnrecognizedSemanticType reports an unknown semantic type tag.
func UnrecognizedSemanticType(value string) *Error {
	return New(ErrCodeUnrecognizedSemanticType, "Unrecognized semantic type %q.", value)
}

// UnrecognizedSymbol reports nucleotide text outside the symbol alphabet.
func UnrecognizedSymbol(value string) *Error {
	return New(ErrCodeUnrecognizedSymbol, "Unrecognized nucleotide symbol %q.", value)
}

// UnrecognizedBasePairType reports an unknown base-pair type literal.
func UnrecognizedBasePairType(value string) *Error {
	return New(ErrCodeUnrecognizedBasePairType, "Unrecognized base-pair type %q.", value)
}

// MalformedTransform reports a transform string that cannot be parsed.
func MalformedTransform(text, reason string) *Error {
	return New(ErrCodeMalformedTransform, "Malformed transform %q: %s.", text, reason)
}

// DanglingReference reports a reference to a molecule or nucleotide that does
// not exist once its complex has been fully built.
func DanglingReference(format string, args ...any) *Error {
	return New(ErrCodeDanglingReference, format, args...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
