package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a store error so callers can dispatch without parsing
// message text.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindLocked
	KindInsufficientBalance
)

// Error is the single error shape returned by every store service. All kinds
// are recoverable by the caller; none are fatal to the process.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Locked(format string, args ...interface{}) *Error {
	return &Error{Kind: KindLocked, Message: fmt.Sprintf(format, args...)}
}

func InsufficientBalance(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInsufficientBalance, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Status maps an error to the HTTP status the handlers respond with.
// Unknown errors map to 500.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return 500
	}
	switch e.Kind {
	case KindValidation:
		return 400
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	case KindLocked:
		return 423
	case KindInsufficientBalance:
		return 422
	}
	return 500
}
