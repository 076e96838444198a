package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorType classifies a failure. Every type maps to exactly one HTTP status.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeInternal     ErrorType = "INTERNAL"
	ErrorTypeUnavailable  ErrorType = "UNAVAILABLE"
	ErrorTypeDatabase     ErrorType = "DATABASE"
)

// Machine-readable codes attached to errors clients are expected to branch on
const (
	CodeOwnershipViolation = "OWNERSHIP_VIOLATION"
	CodeDuplicateCategory  = "DUPLICATE_CATEGORY"
	CodeInvalidBody        = "INVALID_BODY"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

var statusByType = map[ErrorType]int{
	ErrorTypeValidation:   http.StatusBadRequest,
	ErrorTypeNotFound:     http.StatusNotFound,
	ErrorTypeConflict:     http.StatusConflict,
	ErrorTypeUnauthorized: http.StatusUnauthorized,
	ErrorTypeForbidden:    http.StatusForbidden,
	ErrorTypeInternal:     http.StatusInternalServerError,
	ErrorTypeUnavailable:  http.StatusServiceUnavailable,
	ErrorTypeDatabase:     http.StatusInternalServerError,
}

// AppError is the error value passed between layers and rendered by ErrorHandler
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
	HTTPStatus int                    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode sets the machine-readable code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Exposable reports whether the message may be shown to API clients.
// Internal and storage failures only ever surface a generic message.
func (e *AppError) Exposable() bool {
	if e.Type == ErrorTypeUnavailable {
		return true
	}
	return e.HTTPStatus > 0 && e.HTTPStatus < http.StatusInternalServerError
}

func newError(t ErrorType, message string) *AppError {
	return &AppError{
		Type:       t,
		Message:    message,
		HTTPStatus: statusByType[t],
		StackTrace: captureStackTrace(),
	}
}

func captureStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(4, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			break
		}
	}
	return sb.String()
}

// NewValidationError reports a missing or invalid field in a request
func NewValidationError(message string) *AppError {
	return newError(ErrorTypeValidation, message)
}

// NewNotFoundError reports "<resource> not found", e.g. "Note not found"
func NewNotFoundError(resource string) *AppError {
	return newError(ErrorTypeNotFound, fmt.Sprintf("%s not found", resource))
}

func NewConflictError(message string) *AppError {
	return newError(ErrorTypeConflict, message)
}

// NewDuplicateCategoryError is the conflict returned when a user already has
// a category with the requested name.
func NewDuplicateCategoryError() *AppError {
	return newError(ErrorTypeConflict, "Category already exists").WithCode(CodeDuplicateCategory)
}

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return newError(ErrorTypeUnauthorized, message)
}

func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return newError(ErrorTypeForbidden, message)
}

func NewInternalError(message string) *AppError {
	return newError(ErrorTypeInternal, message)
}

// NewUnavailableError reports a dependency that is refusing calls, such as
// an open circuit breaker.
func NewUnavailableError(service string) *AppError {
	return newError(ErrorTypeUnavailable, fmt.Sprintf("service '%s' is unavailable", service)).
		WithCode(CodeStorageUnavailable)
}

// NewDatabaseError wraps a driver failure. Its cause is logged, never rendered.
func NewDatabaseError(operation string, err error) *AppError {
	return newError(ErrorTypeDatabase, fmt.Sprintf("database operation '%s' failed", operation)).WithCause(err)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the first AppError in the chain, or nil
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

func IsNotFound(err error) bool   { return IsType(err, ErrorTypeNotFound) }
func IsValidation(err error) bool { return IsType(err, ErrorTypeValidation) }
func IsForbidden(err error) bool  { return IsType(err, ErrorTypeForbidden) }
func IsConflict(err error) bool   { return IsType(err, ErrorTypeConflict) }

// IsInternal covers both INTERNAL and DATABASE errors
func IsInternal(err error) bool {
	return IsType(err, ErrorTypeInternal) || IsType(err, ErrorTypeDatabase)
}

// Wrap passes domain AppErrors through untouched and turns storage and plain
// errors into an internal error carrying the original as its cause.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil && appErr.Type != ErrorTypeDatabase {
		return err
	}
	return NewInternalError(message).WithCause(err)
}
