package services

import (
	"fmt"
	"net/http"
)

// StatusError is an expected failure carrying the HTTP status it maps to.
// Anything else that escapes a service is treated as an internal error.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

func NotFound(format string, args ...any) *StatusError {
	return &StatusError{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(msg string) *StatusError {
	return &StatusError{Status: http.StatusConflict, Message: msg}
}

func Unauthorized(msg string) *StatusError {
	return &StatusError{Status: http.StatusUnauthorized, Message: msg}
}

func BadRequest(msg string) *StatusError {
	return &StatusError{Status: http.StatusBadRequest, Message: msg}
}
