package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrPathUnresolved is recorded when the keyspace, row key or family of a container cannot be
	// determined before a load or save.
	ErrPathUnresolved = errors.New("column path unresolved")
	// ErrMalformedPayload is recorded when populate is handed data that is not a usable mapping.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrNoStore is recorded when a container has no store to talk to.
	ErrNoStore = errors.New("no store configured")
)

// Error wraps a sentinel error with additional context
type Error struct {
	err     error
	context string
}

// Error satisfies the error interface
func (e *Error) Error() string {
	if e.context == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.err.Error(), e.context)
}

// Unwrap implements the errors.Unwrap interface for compatibility with errors.Is/As
func (e *Error) Unwrap() error {
	return e.err
}

func newError(err error, format string, args ...interface{}) *Error {
	return &Error{
		err:     err,
		context: fmt.Sprintf(format, args...),
	}
}
