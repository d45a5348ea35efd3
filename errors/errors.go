package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

/*
* Error codes classify failures so that the HTTP layer can map them to the
* correct status without inspecting message text. These are combined with
* the appropriate HTTP status code, but are not intended to supersede
* correct HTTP responses.
 */

const (
	// HTTP 400 Bad Request.
	// A date parameter was outside the expected range (month/week).
	InvalidArgument ErrCode = 1
	// The requested period lies wholly in the future.
	InvalidPeriod ErrCode = 2

	// HTTP 404 Not Found.
	// The query matched no data, e.g. an article absent from a month.
	NotFound ErrCode = 3

	// HTTP 504 Gateway Timeout.
	// The remote pageviews source failed; never retried.
	FetchFailed ErrCode = 4
)

// ErrCode identifies a class of failure.
type ErrCode uint8

// QueryError implements the Error interface.
type QueryError struct {
	ErrorCode    ErrCode `json:"errorCode"`
	ErrorMessage string  `json:"errorDetail"`
	cause        error
}

func (e *QueryError) Error() string {
	return e.ErrorMessage
}

func (e *QueryError) Unwrap() error {
	return e.cause
}

// New returns an error carrying the given code and message.
func New(errCode ErrCode, errMessage string) error {
	return &QueryError{
		ErrorCode:    errCode,
		ErrorMessage: errMessage,
	}
}

// Newf is New with fmt.Sprintf formatting.
func Newf(errCode ErrCode, format string, args ...interface{}) error {
	return New(errCode, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to an underlying cause. The cause is
// reachable via errors.Unwrap for logging, but the message shown to
// clients is errMessage.
func Wrap(errCode ErrCode, cause error, errMessage string) error {
	return &QueryError{
		ErrorCode:    errCode,
		ErrorMessage: fmt.Sprintf("%s: %v", errMessage, cause),
		cause:        cause,
	}
}

// CodeOf returns the error code carried by err, if any.
func CodeOf(err error) (ErrCode, bool) {
	var qe *QueryError
	if stderrors.As(err, &qe) {
		return qe.ErrorCode, true
	}
	return 0, false
}

// StatusCode maps an error to the HTTP status it should be served with.
// Errors without a code are treated as internal.
func StatusCode(err error) int {
	code, ok := CodeOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch code {
	case InvalidArgument, InvalidPeriod:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case FetchFailed:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
