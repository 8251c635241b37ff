package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound         = errors.New("not found")
	ErrResolution       = errors.New("identity resolution failed")
	ErrInvalidReference = errors.New("invalid post reference")
	ErrInvalidInput     = errors.New("invalid input")
)

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// FetchError is returned when a remote API request does not succeed. It
// carries the HTTP status the server answered with.
type FetchError struct {
	StatusCode int
	Endpoint   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("remote fetch %s failed with status %d", e.Endpoint, e.StatusCode)
}

// NewFetchError creates a FetchError for the given endpoint and status.
func NewFetchError(endpoint string, statusCode int) error {
	return &FetchError{StatusCode: statusCode, Endpoint: endpoint}
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsNotFound returns true if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsResolution returns true if the error came from identity resolution
func IsResolution(err error) bool {
	return errors.Is(err, ErrResolution)
}

// IsFetch returns true if the error is a remote fetch error, and reports
// the status code it carried.
func IsFetch(err error) (int, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.StatusCode, true
	}
	return 0, false
}
