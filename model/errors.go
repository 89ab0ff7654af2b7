package model

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by a model wraps exactly one of these.
var (
	// ErrTypeMismatch is a non-numeric value where a number is required.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDomain is a value outside the parameter's valid domain.
	ErrDomain = errors.New("domain error")

	// ErrInvalidArgument is an unrecognised option, a missing parameter or an unknown one.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange is a lookup outside valid bounds.
	ErrOutOfRange = errors.New("out of range")

	// ErrUnimplemented is returned by variants with no pricing logic.
	ErrUnimplemented = errors.New("pricing logic not implemented")
)

// ParamError reports which parameter of which operation failed and why.
type ParamError struct {
	Op    string
	Param string
	Msg   string
	Err   error
}

func (e *ParamError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: %s (%v)", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s (%v)", e.Op, e.Param, e.Msg, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// Domainf builds a domain error for param.
func Domainf(op, param, format string, args ...interface{}) error {
	return &ParamError{Op: op, Param: param, Msg: fmt.Sprintf(format, args...), Err: ErrDomain}
}

// Invalidf builds an invalid-argument error for param.
func Invalidf(op, param, format string, args ...interface{}) error {
	return &ParamError{Op: op, Param: param, Msg: fmt.Sprintf(format, args...), Err: ErrInvalidArgument}
}

// OutOfRangef builds an out-of-range error for param.
func OutOfRangef(op, param, format string, args ...interface{}) error {
	return &ParamError{Op: op, Param: param, Msg: fmt.Sprintf(format, args...), Err: ErrOutOfRange}
}

func mismatchf(op, param, format string, args ...interface{}) error {
	return &ParamError{Op: op, Param: param, Msg: fmt.Sprintf(format, args...), Err: ErrTypeMismatch}
}
