// Package apperr carries domain errors from services to the transport layer,
// which maps each code to a fixed HTTP status.
package apperr

import "errors"

type Code string

const (
	CodeNotFound     Code = "NOT_FOUND"
	CodeForbidden    Code = "FORBIDDEN"
	CodeValidation   Code = "VALIDATION"
	CodeConflict     Code = "CONFLICT"
	CodeUnknownState Code = "UNKNOWN_STATE"
)

type codedError struct {
	code Code
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() Code    { return e.code }

func NotFound(msg string) error     { return codedError{code: CodeNotFound, msg: msg} }
func Forbidden(msg string) error    { return codedError{code: CodeForbidden, msg: msg} }
func Validation(msg string) error   { return codedError{code: CodeValidation, msg: msg} }
func Conflict(msg string) error     { return codedError{code: CodeConflict, msg: msg} }
func UnknownState(msg string) error { return codedError{code: CodeUnknownState, msg: msg} }

// CodeOf extracts the code, or "" for errors that are not domain errors.
func CodeOf(err error) Code {
	var ce interface{ Code() Code }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
