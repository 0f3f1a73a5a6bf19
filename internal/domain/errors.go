package domain

import (
	"errors"
	"net/http"
)

// Error kinds. Use case errors wrap one of them so the transport layer can
// pick a status code without knowing every use case error.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence failure")
)

// ErrorKind classifies an error for the transport layer
type ErrorKind string

const (
	KindNone        ErrorKind = ""
	KindNotFound    ErrorKind = "NOT_FOUND"
	KindValidation  ErrorKind = "VALIDATION"
	KindConflict    ErrorKind = "CONFLICT"
	KindPersistence ErrorKind = "ERROR"
)

// KindOf returns the kind of err. Unclassified errors are persistence failures.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindPersistence
	}
}

// StatusCode maps an error to an HTTP status code by its kind
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindNone:
		return http.StatusOK
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
