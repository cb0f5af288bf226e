// Package apperr holds the closed set of error kinds the services return
// and the HTTP layer maps to status codes.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindConflict
	KindNotFound
	KindUnavailable
	KindMisconfigured
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	case KindMisconfigured:
		return "misconfigured"
	default:
		return "internal"
	}
}

// Error is a tagged error. Message is safe to show to the caller; Cause is
// for logs only.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func Validation(msg string) *Error     { return &Error{Kind: KindValidation, Message: msg} }
func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Message: msg} }
func Conflict(msg string) *Error       { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) *Error       { return &Error{Kind: KindNotFound, Message: msg} }

func Unavailable(msg string, cause error) *Error {
	return &Error{Kind: KindUnavailable, Message: msg, Cause: cause}
}

func Misconfigured(msg string, cause error) *Error {
	return &Error{Kind: KindMisconfigured, Message: msg, Cause: cause}
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternal, Cause: cause}
}

// KindOf reports the kind of err; anything untagged is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// PublicMessage returns the message that may be shown to the caller.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return MsgInternal
	}
	switch e.Kind {
	case KindInternal:
		return MsgInternal
	case KindUnavailable, KindMisconfigured:
		return MsgAIUnavailable
	}
	return e.Message
}

// Status maps a kind to its HTTP status.
func Status(k Kind) int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable, KindMisconfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
