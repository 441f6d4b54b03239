package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for transport mapping.
type Kind int

const (
	// KindNotFound means a referenced resource does not exist.
	KindNotFound Kind = iota + 1
	// KindConflict means the request collides with existing state.
	KindConflict
	// KindInvalidInput means the arguments fail a domain rule.
	KindInvalidInput
)

// Error is an application error with a transport-mappable kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports a missing resource.
func NotFound(resource string, id any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf("%s %v not found", resource, id)}
}

// Conflict reports a duplicate or colliding submission.
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// InvalidInput reports arguments that violate a domain rule.
func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// HTTPStatus maps an error to a response status.
func HTTPStatus(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
