// Package apperr defines the error taxonomy shared by the store and the
// GraphQL layer. Every error carries an HTTP-like status code that is
// surfaced on the wire as extensions.code = "COOLER_<status>".
package apperr

import (
	"errors"
	"fmt"
)

// Error is a coded application error.
type Error struct {
	Status  int
	Message string
	// Fields carries per-field validation messages, when there are any.
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// Code is the wire representation of the status, e.g. "COOLER_404".
func (e *Error) Code() string {
	return fmt.Sprintf("COOLER_%d", e.Status)
}

// Extensions implements gqlerrors.ExtendedError so the GraphQL layer
// includes the code (and field messages) in the error's extensions.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code()}
	if len(e.Fields) > 0 {
		fields := make(map[string]interface{}, len(e.Fields))
		for k, v := range e.Fields {
			fields[k] = v
		}
		ext["fields"] = fields
	}
	return ext
}

func BadRequest(message string) *Error {
	return &Error{Status: 400, Message: message}
}

// Validation is a 400 carrying per-field messages.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Status: 400, Message: message, Fields: fields}
}

func Unauthorized(message string) *Error {
	return &Error{Status: 401, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Status: 403, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Status: 404, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Status: 409, Message: message}
}

func Internal(err error) *Error {
	return &Error{Status: 500, Message: fmt.Sprintf("unexpected error: %v", err)}
}

// StatusOf returns the status code of err, or 500 when err is not a
// coded error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 500
}
