// Package validation defines the argument errors returned by the dive gas
// calculators and gas constructors. The message text is stable and callers
// may rely on it.
package validation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument matches any *InvalidArgumentError via errors.Is
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange matches any *RangeError via errors.Is
	ErrOutOfRange = errors.New("argument out of range")
)

// InvalidArgumentError reports a value that is structurally wrong for the
// domain, such as a negative depth or gas fractions that don't add up.
type InvalidArgumentError struct {
	Param   string
	Value   any
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return formatMessage(e.Message, e.Param)
}

// Is reports whether target is ErrInvalidArgument
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// RangeError reports a fraction-typed value outside of its numeric domain
type RangeError struct {
	Param   string
	Value   any
	Message string
}

func (e *RangeError) Error() string {
	return formatMessage(e.Message, e.Param)
}

// Is reports whether target is ErrOutOfRange
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// InvalidArgument builds an *InvalidArgumentError
func InvalidArgument(param string, value any, message string) error {
	return &InvalidArgumentError{Param: param, Value: value, Message: message}
}

// OutOfRange builds a *RangeError
func OutOfRange(param string, value any, message string) error {
	return &RangeError{Param: param, Value: value, Message: message}
}

// IsArgumentError reports whether err is either kind of argument error
func IsArgumentError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrOutOfRange)
}

func formatMessage(message, param string) string {
	if param == "" {
		return message
	}
	return fmt.Sprintf("%s (Parameter '%s')", message, param)
}
