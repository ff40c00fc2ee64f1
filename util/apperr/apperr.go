// Package apperr is the shared error taxonomy for services. Controllers
// switch on Code() to pick an HTTP status; everything else travels as the
// message.
package apperr

import "errors"

type Code string

const (
	NotFound  Code = "NOT_FOUND"
	Conflict  Code = "CONFLICT"
	Forbidden Code = "FORBIDDEN"
	Invalid   Code = "INVALID"
	Gateway   Code = "GATEWAY"
)

type codedError struct {
	code Code
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() Code    { return e.code }

func New(code Code, msg string) error { return codedError{code: code, msg: msg} }

// CodeOf extracts the code from err, or "" for plain errors.
func CodeOf(err error) Code {
	var ce interface{ Code() Code }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
