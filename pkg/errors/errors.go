// Package errors augments the standard errors
// provided by fmt (https://golang.org/src/fmt/errors.go)
// with sentinel errors that may be wrapped without losing their kind.
//
// A sentinel declared with New is never mutated: Wrap and WrapMessage
// return a fresh error which still matches the sentinel with Is.
package errors

import (
	stderr "errors"
	"fmt"

	"go.uber.org/zap"
)

var _ error = New("")

// New sentinel Error
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error augments the standard error interface with a Wrap method.
//
// The main difference with github.com/pkg/errors is that we are wrapping
// errors from errors, not from text.
type Error struct {
	msg    string
	detail string
	err    error
	kind   *Error
}

// Error message
func (e *Error) Error() string {
	msg := e.msg
	if e.detail != "" {
		msg += ": " + e.detail
	}
	if e.err != nil {
		msg += ": " + e.err.Error()
	}
	return msg
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Kind returns the sentinel this error derives from
func (e *Error) Kind() *Error {
	if e.kind != nil {
		return e.kind
	}
	return e
}

func (e *Error) derive() *Error {
	return &Error{
		msg:    e.msg,
		detail: e.detail,
		err:    e.err,
		kind:   e.Kind(),
	}
}

// Wrap a nested error
func (e *Error) Wrap(err error) *Error {
	d := e.derive()
	d.err = err
	return d
}

// WrapMessage adds some formatted detail to the error
func (e *Error) WrapMessage(format string, args ...interface{}) *Error {
	d := e.derive()
	d.detail = fmt.Sprintf(format, args...)
	return d
}

// WrapWithLog wraps a nested error and logs the result as an error
func (e *Error) WrapWithLog(l *zap.Logger, err error, fields ...zap.Field) *Error {
	d := e.Wrap(err)
	if l != nil {
		l.Error(d.msg, append(fields, zap.Error(err))...)
	}
	return d
}

// Is of some error type?
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || e.Kind() == t
}

// As finds the first error in err's chain that matches target, and if so, sets target to that error value and returns true.
// (a shortcut to standard lib errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to standard lib errors.As)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
