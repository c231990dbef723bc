package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeEngine     = "ENGINE_ERROR"
	ErrCodeIngest     = "INGEST_ERROR"
)

// AppError represents an application error with a stable error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "ENGINE_ERROR")
	Message string // Human-readable error message
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// NewEngineError creates a new ENGINE_ERROR wrapping an engine failure
func NewEngineError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeEngine,
		Message: message,
		Err:     err,
	}
}

// NewIngestError creates a new INGEST_ERROR for unusable game input
func NewIngestError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeIngest,
		Message: message,
		Err:     err,
	}
}
