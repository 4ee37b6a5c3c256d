package bandbook

import "errors"

var (
	ErrLengthMismatch   = errors.New("band names and descriptions differ in length")
	ErrEmptyName        = errors.New("band name is empty")
	ErrResourceNotFound = errors.New("the requested resource does not exist")
	ErrNotFound         = errors.New("the requested band could not be found")
	ErrDB               = errors.New("an error occured with the resource DB")
	ErrDecodingFailure  = errors.New("resource data could not be decoded")
	ErrBadArgument      = errors.New("one or more of the arguments is invalid")
)

// Error is a typed error returned by bandbook functions as their error value.
// It contains both a message explaining what happened as well as one or more
// error values it considers to be its causes. Error is compatible with the use
// of errors.Is() - calling errors.Is on some Error value err along with any
// value of error it holds as one of its causes will return true. This allows
// for easy examination and failure condition checking without needing to
// resort to manual typecasting.
//
// If Error has at least one cause defined, the result of calling Error.Error()
// will be its primary message with the result of calling Error() on its first
// cause appended to it.
//
// Error should not be used directly; call NewError to create one.
type Error struct {
	msg   string
	cause []error
}

// Error returns the message defined for the Error. If a message was defined for
// it when created, that message is returned, concatenated with the result of
// calling Error() on the its first cause if one is defined. If no message or an
// empty message was defined for it when created, but there is at least one
// cause defined for it, the result of calling Error() on the first cause is
// returned. If no message is defined and no causes are defined, returns the
// empty string.
func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}

	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}

	return e.msg
}

// Unwrap returns the causes of Error. The return value will be nil if no causes
// were defined for it.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// Is returns whether Error either Is itself the given target error, or one of
// its causes is.
func (e Error) Is(target error) bool {
	errTarget, ok := target.(Error)
	if !ok || e.msg != errTarget.msg || len(e.cause) != len(errTarget.cause) {
		return false
	}

	for i := range e.cause {
		// Error holds a slice and is not comparable with ==.
		if sErr, ok := e.cause[i].(Error); ok {
			if !sErr.Is(errTarget.cause[i]) {
				return false
			}
		} else if _, ok := errTarget.cause[i].(Error); ok {
			return false
		} else if e.cause[i] != errTarget.cause[i] {
			return false
		}
	}
	return true
}

// NewError creates a new Error with the given message, along with any errors it
// should wrap as its causes. Providing cause errors is not required, but will
// cause it to return true when it is checked against that error via a call to
// errors.Is.
func NewError(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}
