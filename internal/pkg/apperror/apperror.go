package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError independently of its message.
type Kind string

const (
	KindFormat            Kind = "format"
	KindValidation        Kind = "validation"
	KindInvalidTransition Kind = "invalid_transition"
	KindUnauthorized      Kind = "unauthorized"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindInternal          Kind = "internal"
)

// statusByKind maps each kind to the HTTP status code the API answers with.
var statusByKind = map[Kind]int{
	KindFormat:            http.StatusBadRequest,
	KindValidation:        http.StatusBadRequest,
	KindInvalidTransition: http.StatusConflict,
	KindUnauthorized:      http.StatusUnauthorized,
	KindNotFound:          http.StatusNotFound,
	KindConflict:          http.StatusConflict,
	KindInternal:          http.StatusInternalServerError,
}

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    Kind   // Error class used by callers that do not care about HTTP
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError of the given kind.
func New(kind Kind, message string) *AppError {
	return &AppError{
		Code:    codeFor(kind),
		Kind:    kind,
		Message: message,
	}
}

// Newf is New with a formatted message.
func Newf(kind Kind, format string, args ...any) *AppError {
	return New(kind, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of the first AppError in err's chain,
// or KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func codeFor(kind Kind) int {
	if code, ok := statusByKind[kind]; ok {
		return code
	}
	return http.StatusInternalServerError
}
