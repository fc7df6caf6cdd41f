package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service matches exactly one of them
// with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrDependency = errors.New("dependency")
	ErrStorage    = errors.New("storage failure")

	// ErrUnauthenticated is only returned by Login.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Reasons attached to sale validation errors.
const (
	ReasonProductsNotFound    = "products_not_found"
	ReasonInsufficientStock   = "insufficient_stock"
	ReasonTaxUnavailable      = "tax_not_found_or_inactive"
	ReasonDiscountUnavailable = "discount_not_found_or_inactive"
	ReasonNegativeStock       = "negative_stock"
	ReasonInvalidInput        = "invalid_input"
	ReasonInvalidCredentials  = "invalid_credentials"
)

// Error is the error type returned by services. Kind is one of the sentinels above.
type Error struct {
	Kind    error
	Reason  string
	Message string
	Details map[string]interface{}
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

// KindName is the lower-case name used in API responses.
func (e *Error) KindName() string {
	switch e.Kind {
	case ErrNotFound:
		return "not_found"
	case ErrValidation:
		return "validation"
	case ErrConflict:
		return "conflict"
	case ErrDependency:
		return "dependency"
	case ErrUnauthenticated:
		return "unauthenticated"
	default:
		return "storage"
	}
}

func notFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func validation(reason, message string, details map[string]interface{}) *Error {
	return &Error{Kind: ErrValidation, Reason: reason, Message: message, Details: details}
}

func conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

func dependency(message string) *Error {
	return &Error{Kind: ErrDependency, Message: message}
}

// storage wraps an unexpected repository error.
func storage(message string, cause error) *Error {
	return &Error{Kind: ErrStorage, Message: message, cause: cause}
}
