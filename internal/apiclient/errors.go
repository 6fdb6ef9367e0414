package apiclient

import (
	"errors"
	"fmt"
)

// fallbackMessage is used when a failed response carries no body.
const fallbackMessage = "Request failed"

// StatusError is returned for any non-2xx response. Error() is the response
// body text verbatim.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string { return e.Message }

func newStatusError(code int, body []byte) *StatusError {
	msg := string(body)
	if msg == "" {
		msg = fallbackMessage
	}
	return &StatusError{StatusCode: code, Message: msg}
}

// DecodeError wraps a JSON decoding failure on an otherwise successful response.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.Path, e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// IsStatus reports whether err is a StatusError with the given code.
// A code of 0 matches any status.
func IsStatus(err error, code int) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return code == 0 || se.StatusCode == code
}

// IsDecode reports whether err is a response decoding failure.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
