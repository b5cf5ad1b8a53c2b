package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a domain error into the taxonomy every storage failure is
// reduced to before it reaches the transport boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindValidation
)

// Error is the domain error carried between services and handlers. Detail of
// the wrapped cause is withheld from clients; only Message is exposed.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// NotFound creates a not-found domain error
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a conflict (duplicate) domain error
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized creates an unauthorized domain error
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden creates a forbidden domain error
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Validation creates a validation domain error
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Internal wraps an unexpected failure. The cause stays attached for logging
// but is never serialized to the client.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsConflict reports whether err is a conflict domain error
func IsConflict(err error) bool { return hasKind(err, KindConflict) }

// IsInternal reports whether err is an internal domain error
func IsInternal(err error) bool { return hasKind(err, KindInternal) }

func hasKind(err error, kind Kind) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == kind
}

// ToProblemDetails converts the domain error to its RFC 7807 representation
func (e *Error) ToProblemDetails(instance string) *ProblemDetails {
	switch e.Kind {
	case KindNotFound:
		return NewNotFoundProblem(e.Message, instance)
	case KindConflict:
		return NewConflictProblem(e.Message, instance)
	case KindUnauthorized:
		return NewUnauthorizedProblem(e.Message, instance)
	case KindForbidden:
		return NewForbiddenProblem(e.Message, instance)
	case KindValidation:
		return NewValidationProblem(e.Message, instance)
	default:
		return NewInternalProblem(e.Message, instance)
	}
}
