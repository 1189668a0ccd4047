package store

import (
	"fmt"
	"net/http"
)

// Error is a storage-layer error with an HTTP status code. Callers only need
// the kind (code) for correct behavior; the wrapped driver error is carried
// for logging.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target matches this error. Two store errors match when
// they share a status code, so errors.Is(err, ErrNotFound) catches every
// WithMessage variant.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Code:    e.Code,
		Message: msg,
		Err:     e.Err,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Sentinel errors.
var (
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Code:    http.StatusConflict,
		Message: "resource already exists",
	}

	ErrInvalidInput = &Error{
		Code:    http.StatusBadRequest,
		Message: "invalid input",
	}

	ErrUnauthorized = &Error{
		Code:    http.StatusUnauthorized,
		Message: "unauthorized",
	}
)

// Entity-specific not-found sentinels. These share the 404 code but carry a
// message naming the missing entity, so handlers can pass them through
// unchanged.
var (
	ErrStoreNotFound = ErrNotFound.WithMessage("store not found")
	ErrItemNotFound  = ErrNotFound.WithMessage("item not found")
	ErrTagNotFound   = ErrNotFound.WithMessage("tag not found")
	ErrUserNotFound  = ErrNotFound.WithMessage("user not found")
)
