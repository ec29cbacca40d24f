// Package errors is the coded error every layer returns. Import it as perr.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an Error for the API envelope and for retries.
// The values go over the wire; append only.
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable // node, RPC or store unreachable for now
	ErrorCodeConflict
	ErrorCodeUnauthorized
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
	ErrorCodeConfig         // component used without its wiring
	ErrorCodeMalformedEvent // log that does not decode as the expected event
)

var statuses = map[ErrorCode]int{
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeConflict:        http.StatusConflict,
	ErrorCodeDuplicateKey:    http.StatusConflict,
	ErrorCodeUnauthorized:    http.StatusUnauthorized,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeMalformedEvent:  http.StatusBadRequest,
	ErrorCodeNotFound:        http.StatusNotFound,
}

// HTTPStatus is the status the API answers err with; uncoded errors are 500s
func HTTPStatus(err error) int {
	if s, ok := statuses[CodeOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a coded message, optionally wrapping a cause and naming the input
// field or the operation it came from
type Error struct {
	code  ErrorCode
	msg   string
	cause error
	field string
	op    string
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Code() ErrorCode { return e.code }
func (e *Error) Field() string   { return e.field }
func (e *Error) Op() string      { return e.op }

// Wire is what the API envelope shows of an error. The cause stays server side.
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// WireFrom projects err for the envelope, zero for nil
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// As finds the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf is err's code, ErrorCodeUnknown when it carries none
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// WithField returns a copy naming the offending input field. Uncoded errors pass through.
func WithField(err error, field string) error {
	return annotate(err, func(e *Error) { e.field = field })
}

// WithOp returns a copy tagged with the failing operation. Uncoded errors pass through.
func WithOp(err error, op string) error {
	return annotate(err, func(e *Error) { e.op = op })
}

func annotate(err error, set func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	set(&c)
	return &c
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap codes cause under msg
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), cause: cause}
}

func InvalidArgf(format string, a ...any) error     { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error        { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error       { return Newf(ErrorCodePanic, format, a...) }
func Unauthorizedf(format string, a ...any) error   { return Newf(ErrorCodeUnauthorized, format, a...) }
func Configf(format string, a ...any) error         { return Newf(ErrorCodeConfig, format, a...) }
func MalformedEventf(format string, a ...any) error { return Newf(ErrorCodeMalformedEvent, format, a...) }
func Unavailablef(format string, a ...any) error    { return Newf(ErrorCodeUnavailable, format, a...) }
