package oerror

import "fmt"

// Error is the error type returned by gravctl packages for failures that are not caused by
// a lower level error.
type Error struct {
	Err string
}

// New returns a new *Error, formatting the message with the arguments passed.
func New(format string, args ...interface{}) *Error {
	if len(args) == 0 {
		return &Error{Err: format}
	}
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}
