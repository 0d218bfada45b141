package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Cause returns the underlying error for diagnostics (may be nil)
func (e *DomainError) Cause() error {
	return e.cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error for a specific field
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: field + ": " + message,
	}
}

// NewOperationFailure wraps an unexpected underlying failure with a
// user-safe message. The original cause is preserved for logging but is
// never exposed to the caller.
func NewOperationFailure(message string, cause error) *DomainError {
	return &DomainError{
		Code:    "OPERATION_FAILED",
		Message: message,
		cause:   cause,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrPolicyViolation     = NewDomainError("POLICY_VIOLATION", "Operation not permitted by marketplace policy")
	ErrQuotaExceeded       = NewDomainError("QUOTA_EXCEEDED", "Quota exceeded")
)
