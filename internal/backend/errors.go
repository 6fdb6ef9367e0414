package backend

import (
	"errors"
	"net/http"
)

// modelNotFoundError is returned when a chat names a model that is not registered.
type modelNotFoundError struct{ id string }

func (e modelNotFoundError) Error() string { return "Unknown model_id '" + e.id + "'." }

func (e modelNotFoundError) StatusCode() int { return http.StatusNotFound }

// ErrModelNotFound returns the error for an unregistered model id.
func ErrModelNotFound(id string) error { return modelNotFoundError{id: id} }

// IsModelNotFound reports whether the error indicates a missing model id.
func IsModelNotFound(err error) bool {
	var e modelNotFoundError
	return errors.As(err, &e)
}

// validationError rejects a request field; mapped to 422 by the HTTP layer.
type validationError struct {
	field string
	msg   string
}

func (e validationError) Error() string { return e.field + ": " + e.msg }

func (e validationError) StatusCode() int { return http.StatusUnprocessableEntity }

// ErrValidation constructs a validationError.
func ErrValidation(field, msg string) error { return validationError{field: field, msg: msg} }

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var e validationError
	return errors.As(err, &e)
}
