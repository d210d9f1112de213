// Package errors provides structured error types for the setup toolkit.
//
// Every failure the bootstrap can hit falls into a small, closed taxonomy.
// Codes let callers decide policy (halt, warn, re-prompt) without string
// matching, while the wrapped cause keeps the full chain available for
// errors.Is/As.
//
// # Usage
//
//	err := errors.Wrap(errors.CodeNetwork, cause, "download %s", url)
//	if errors.Is(err, errors.CodeNetwork) {
//	    // partial artifact already removed, report and stop
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the bootstrap failure taxonomy.
const (
	// CodeNetwork covers DNS, connection, timeout, and HTTP-status
	// failures during a fetch. The partial artifact is always removed
	// before this is returned.
	CodeNetwork Code = "NETWORK_ERROR"

	// CodeArchive covers corrupt or unreadable archives. The archive is
	// preserved on disk so the extraction can be retried without a
	// re-download.
	CodeArchive Code = "ARCHIVE_ERROR"

	// CodeVersionMismatch means a dependency is present but below the
	// required version. Never auto-upgraded.
	CodeVersionMismatch Code = "VERSION_MISMATCH"

	// CodeConsentDeclined means the user opted out of an install.
	CodeConsentDeclined Code = "CONSENT_DECLINED"

	// CodePlatformUnsupported means the current OS has no download URL
	// or marker path configured. Fatal.
	CodePlatformUnsupported Code = "PLATFORM_UNSUPPORTED"

	// CodeRestartRequired means an install was handed off to an
	// interactive installer and cannot take effect in this process;
	// the user must re-run in a fresh shell.
	CodeRestartRequired Code = "RESTART_REQUIRED"

	// CodeGeneratorFailed means the external project generator exited
	// non-zero; its exit code is propagated.
	CodeGeneratorFailed Code = "GENERATOR_FAILED"

	// CodeNotFound means a required tool or file does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// CodeInternal is for unexpected internal errors.
	CodeInternal Code = "INTERNAL_ERROR"
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

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
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
