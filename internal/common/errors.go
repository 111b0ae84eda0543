package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Kind classifies an error so the HTTP layer can pick a status code and a
// client-facing message without inspecting error strings.
type Kind int

const (
	KindUpstream Kind = iota
	KindConfiguration
	KindAuthentication
	KindForbidden
	KindValidation
	KindNotFound
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAuthentication:
		return "authentication"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "upstream"
	}
}

// Error carries a Kind, a message that is safe to show to a client and an
// optional cause that is only ever logged.
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

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and a client-facing message to err.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the kind of err. Plain sentinel errors are mapped to the
// closest kind; anything unrecognised is treated as an upstream failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	case errors.Is(err, ErrorAlreadyExists):
		return KindValidation
	case errors.Is(err, ErrorUnauthorized),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired):
		return KindAuthentication
	}
	return KindUpstream
}

// MessageOf returns the message that may be sent to a client for err.
// Upstream failures never leak their cause.
func MessageOf(err error) string {
	kind := KindOf(err)
	var e *Error
	if kind != KindUpstream && errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	switch kind {
	case KindConfiguration:
		return "server configuration error"
	case KindAuthentication:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "invalid request"
	case KindNotFound:
		return "not found"
	case KindMethodNotAllowed:
		return "method not allowed"
	}
	return "internal server error"
}
