package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed client error with HTTP awareness. Status is zero
// when no response was received.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Error codes covering every failure class the client can encounter.
const (
	CodeNetwork    = "NETWORK_ERROR"
	CodeServer     = "SERVER_ERROR"
	CodeDecode     = "DECODE_ERROR"
	CodeStorage    = "STORAGE_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeUnauth     = "UNAUTHORIZED"
)

// Predefined errors for common scenarios.
var (
	ErrNetwork      = New(CodeNetwork, 0, "could not reach the server")
	ErrDecode       = New(CodeDecode, 0, "unexpected response from the server")
	ErrStorage      = New(CodeStorage, 0, "local storage failed")
	ErrValidation   = New(CodeValidation, 0, "validation failed")
	ErrUnauthorized = New(CodeUnauth, http.StatusUnauthorized, "session expired, please log in again")
)

// Network wraps a transport failure where no response arrived.
func Network(err error) *Error {
	return Wrap(err, CodeNetwork, 0, ErrNetwork.Message)
}

// Server builds an error from a non-2xx response. The message is the
// server-supplied one when available, empty otherwise so callers can apply
// their own fallback.
func Server(status int, message string) *Error {
	code := CodeServer
	if status == http.StatusUnauthorized {
		code = CodeUnauth
	}
	return &Error{Code: code, Status: status, Message: message}
}

// Decode wraps a malformed response body.
func Decode(err error) *Error {
	return Wrap(err, CodeDecode, 0, ErrDecode.Message)
}

// Storage wraps a local persistence failure.
func Storage(err error) *Error {
	return Wrap(err, CodeStorage, 0, ErrStorage.Message)
}

// Validation builds a client-side pre-submission failure with an inline
// user-facing message.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Network(err)
}

// IsUnauthorized reports whether err carries an HTTP 401.
func IsUnauthorized(err error) bool {
	e := FromError(err)
	return e != nil && e.Status == http.StatusUnauthorized
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
