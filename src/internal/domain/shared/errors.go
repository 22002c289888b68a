package shared

import (
	"errors"
	"fmt"
)

// ===========================
// DomainError
// ===========================

// ErrorCode is a stable, machine readable error identifier. The HTTP
// boundary maps codes to status codes; messages are for humans.
type ErrorCode string

// DomainError carries a code, a message and optional key/value context.
// Instances are never mutated: WithContext returns a copy.
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error implements error.
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %+v)", e.Code, e.Message, e.Context)
}

// WithContext returns a copy of the error with extra context attached.
// keyValues must be alternating string keys and values.
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is matches any DomainError with the same code, so errors.Is works on
// copies produced by WithContext.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ===========================
// Infrastructure-facing errors shared by every bounded context
// ===========================

const (
	ErrCodeConcurrentModification ErrorCode = "CONCURRENT_MODIFICATION"
	ErrCodeConflictRetryExhausted ErrorCode = "CONFLICT_RETRY_EXHAUSTED"
	ErrCodeStoreUnavailable       ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeRepositoryError        ErrorCode = "REPOSITORY_ERROR"
)

var (
	// ErrConcurrentModification is returned by a repository when an
	// optimistic version check fails. It is retried by the application
	// layer and normally never reaches a caller.
	ErrConcurrentModification = &DomainError{
		Code:    ErrCodeConcurrentModification,
		Message: "record was modified concurrently",
	}

	ErrConflictRetryExhausted = &DomainError{
		Code:    ErrCodeConflictRetryExhausted,
		Message: "too many concurrent updates, please re-read and try again",
	}

	ErrStoreUnavailable = &DomainError{
		Code:    ErrCodeStoreUnavailable,
		Message: "data store is temporarily unavailable",
	}

	ErrRepositoryError = &DomainError{
		Code:    ErrCodeRepositoryError,
		Message: "repository operation failed",
	}
)

// IsRetryable reports whether err is a transient failure worth retrying.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification) || errors.Is(err, ErrStoreUnavailable)
}
