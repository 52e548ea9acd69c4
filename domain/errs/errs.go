package errs

import (
	"errors"
	"fmt"
)

// Code classifies a step failure.
type Code string

const (
	Configuration     Code = "configuration"
	FileNotFound      Code = "file_not_found"
	Parse             Code = "parse"
	TermNotFound      Code = "term_not_found"
	ElementNotFound   Code = "element_not_found"
	AssertionMismatch Code = "assertion_mismatch"
	VisibilityTimeout Code = "visibility_timeout"
	Internal          Code = "internal"
)

// Error is a coded step failure.
type Error struct {
	Code    Code
	Message string
	Err     error

	// Expected and Actual are set for AssertionMismatch.
	Expected string
	Actual   string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		if e.Err != nil {
			return e.Message + ": " + e.Err.Error()
		}
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a coded error with message.
func New(code Code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...interface{}) error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a coded error with message and cause.
func Wrap(code Code, message string, cause error) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// Mismatch creates an AssertionMismatch error that reports both values.
func Mismatch(subject, expected, actual string) error {
	return &Error{
		Code:     AssertionMismatch,
		Message:  fmt.Sprintf("%s: expected %q, got %q", subject, expected, actual),
		Expected: expected,
		Actual:   actual,
	}
}

// CodeOf returns the error code, defaulting to internal.
func CodeOf(err error) Code {
	if err == nil {
		return Internal
	}
	var coded *Error
	if errors.As(err, &coded) {
		if coded.Code == "" {
			return Internal
		}
		return coded.Code
	}
	return Internal
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}
