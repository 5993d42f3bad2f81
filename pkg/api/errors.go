package api

import "fmt"

// ErrorKind categorizes an API error. The transport layer maps kinds to
// HTTP status codes.
type ErrorKind string

const (
	ErrorKindValidation   ErrorKind = "validation"
	ErrorKindUnauthorized ErrorKind = "unauthorized"
	ErrorKindForbidden    ErrorKind = "forbidden"
	ErrorKindNotFound     ErrorKind = "not_found"
	ErrorKindServerError  ErrorKind = "server_error"
)

// InvalidCredentialsMessage is the single message used for every credential
// failure. Unknown email and wrong password are deliberately
// indistinguishable to the client.
const InvalidCredentialsMessage = "Invalid credentials"

// Error is a typed, expected failure. Validation and authorization
// failures travel as *Error and are written locally by handlers; anything
// else is an unexpected fault that surfaces as a generic 500.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidationError creates an Error for bad or missing input.
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrorKindValidation, Message: message}
}

// NewUnauthorizedError creates an Error for failed authentication.
func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: ErrorKindUnauthorized, Message: message}
}

// NewInvalidCredentialsError creates the generic credential-failure Error.
func NewInvalidCredentialsError() *Error {
	return &Error{Kind: ErrorKindUnauthorized, Message: InvalidCredentialsMessage}
}

// NewForbiddenError creates an Error for an authenticated but not entitled
// caller.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: ErrorKindForbidden, Message: message}
}

// NewNotFoundError creates an Error for a missing resource.
func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrorKindNotFound, Message: message}
}

// NewServerError creates an Error for an unexpected internal failure.
func NewServerError(message string) *Error {
	return &Error{Kind: ErrorKindServerError, Message: message}
}
