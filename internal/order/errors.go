package order

import (
	"fmt"
	"net/http"
)

// Machine-readable rejection codes carried on the submission contract.
const (
	CodeEmptyCart          = "EMPTY_CART"
	CodeMissingAddress     = "MISSING_ADDRESS"
	CodeInvalidField       = "INVALID_FIELD"
	CodeUnknownProduct     = "UNKNOWN_PRODUCT"
	CodeProductUnavailable = "PRODUCT_UNAVAILABLE"
	CodeRateLimited        = "RATE_LIMITED"
)

// ValidationError is a final, non-retriable rejection of a submission. It
// names the offending field so the storefront can show a specific message
// instead of a generic failure.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus maps the code to the status class the contract promises.
func (e *ValidationError) HTTPStatus() int {
	if e.Code == CodeRateLimited {
		return http.StatusTooManyRequests
	}
	return http.StatusBadRequest
}

func invalidField(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: CodeInvalidField, Field: field, Message: fmt.Sprintf(format, args...)}
}
