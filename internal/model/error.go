package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeDataAccess       = "DATA_ACCESS_ERROR"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError carries an error code alongside an optional underlying cause.
// Two domain errors match under errors.Is when their codes are equal.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDataAccessError wraps a store-level failure.
func NewDataAccessError(message string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeDataAccess,
		Message: message,
		Err:     err,
	}
}

// NewInvalidInputError describes a rejected payload or parameter.
func NewInvalidInputError(message string) *DomainError {
	return NewDomainError(ErrCodeInvalidInput, message)
}

// Common domain errors
var (
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "product not found")
	ErrDataAccess      = NewDomainError(ErrCodeDataAccess, "data access failure")
	ErrInvalidInput    = NewDomainError(ErrCodeInvalidInput, "invalid input")
)
