package survey

import (
	"errors"
	"fmt"
)

// Kind classifies every error that leaves this package. HTTP handlers map a
// Kind to a status code and never re-derive the classification themselves.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindForbidden
	KindNotFound
	KindInvalidTransition
	KindNoActivePath
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindNoActivePath:
		return "no_active_path"
	default:
		return "internal"
	}
}

// Error carries a stable kind and a caller-safe message. The wrapped cause
// (if any) is for server-side logs only and never reaches API responses.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func errf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// internalErr hides the storage-layer cause behind a generic message.
func internalErr(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: cause}
}

// KindOf extracts the classification from err. Anything that is not a
// *survey.Error counts as internal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// PublicMessage returns the caller-safe message for err.
func PublicMessage(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return "internal error"
}
