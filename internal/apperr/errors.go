// Package apperr defines the error kinds surfaced by handlers and services.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for status mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindConfiguration
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConfiguration:
		return "configuration"
	case KindRemote:
		return "remote"
	default:
		return "internal"
	}
}

// Error carries a kind, a message that is safe to return to callers, and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, apperr.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrAuth          = &Error{Kind: KindAuth}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrRemote        = &Error{Kind: KindRemote}
)

// Validation returns a caller-input error.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Auth returns an authentication error.
func Auth(msg string) error {
	return &Error{Kind: KindAuth, Message: msg}
}

// NotFound returns a missing-resource error.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Configuration returns a missing-configuration error.
func Configuration(msg string) error {
	return &Error{Kind: KindConfiguration, Message: msg}
}

// Remote wraps a downstream failure; msg is what callers see, err is logged.
func Remote(msg string, err error) error {
	return &Error{Kind: KindRemote, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the caller-safe message of err, or fallback for foreign errors.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// HTTPStatus maps err to a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
