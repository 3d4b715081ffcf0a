package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrNotFoundOrForbidden is returned when an approval does not exist or is owned by another approver.
// The two cases are deliberately indistinguishable.
var ErrNotFoundOrForbidden = errors.New("approval not found or access denied")

// ErrAlreadyDecided is returned when an approval has already left the pending state.
var ErrAlreadyDecided = errors.New("approval has already been processed")

// ErrPersistence marks a transient storage failure. Callers may retry with backoff.
var ErrPersistence = errors.New("persistence error")

// ErrInternal is a catch-all for unexpected failures.
var ErrInternal = errors.New("internal error")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// Reason codes returned to callers alongside the error message.
const (
	CodeValidation          = "validation_error"
	CodeNotFoundOrForbidden = "not_found_or_forbidden"
	CodeAlreadyDecided      = "already_decided"
	CodeDuplicate           = "duplicate"
	CodeForbidden           = "forbidden"
	CodePersistence         = "persistence_error"
	CodeInternal            = "internal_error"
)

// AppError carries an HTTP-ish status code and a message on top of a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError. A 500 code marks the error as a persistence failure
// so that it is classified as retryable.
func NewAppError(code int, message string, err error) *AppError {
	if code >= http.StatusInternalServerError {
		if err == nil {
			err = ErrPersistence
		} else if !errors.Is(err, ErrPersistence) {
			err = fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationFailedError creates a validation error with the given message.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewInternalError reports a broken invariant. It is never retryable.
func NewInternalError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: ErrInternal}
}

// NewPersistenceError wraps a storage failure as retryable.
func NewPersistenceError(message string, err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, message, err)
}

// IsRetryable reports whether err is a transient failure worth retrying.
// Validation, ownership and idempotency failures are never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrNotFoundOrForbidden),
		errors.Is(err, ErrAlreadyDecided),
		errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrInternal):
		return false
	}
	return errors.Is(err, ErrPersistence)
}

// ReasonCode maps an error onto the taxonomy code exposed to callers.
func ReasonCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAlreadyDecided):
		return CodeAlreadyDecided
	case errors.Is(err, ErrNotFoundOrForbidden):
		return CodeNotFoundOrForbidden
	case errors.Is(err, ErrDuplicate):
		return CodeDuplicate
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return CodeValidation
	case errors.Is(err, ErrInternal):
		return CodeInternal
	case errors.Is(err, ErrPersistence):
		return CodePersistence
	default:
		return CodeInternal
	}
}
