package model

import (
	"errors"
	"strings"
)

// Error codes carried by domain errors.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNameRequired     = "NAME_REQUIRED"
	ErrCodeEmailRequired    = "EMAIL_REQUIRED"
	ErrCodeInvalidEmail     = "INVALID_EMAIL"
	ErrCodeInvalidPhone     = "INVALID_PHONE"
	ErrCodeValueTooLong     = "VALUE_TOO_LONG"
	ErrCodeEmailExists      = "EMAIL_EXISTS"
	ErrCodeInvalidPrice     = "INVALID_PRICE"
	ErrCodePriceTooLarge    = "PRICE_TOO_LARGE"
	ErrCodeNegativeStock    = "NEGATIVE_STOCK"
	ErrCodeCustomerNotFound = "CUSTOMER_NOT_FOUND"
	ErrCodeNoProducts       = "NO_PRODUCTS"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeTotalTooLarge    = "TOTAL_TOO_LARGE"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is an expected failure that is reported to API clients as data.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNameRequired     = NewDomainError(ErrCodeNameRequired, "Name is required")
	ErrEmailRequired    = NewDomainError(ErrCodeEmailRequired, "Email is required")
	ErrInvalidEmail     = NewDomainError(ErrCodeInvalidEmail, "Invalid email format")
	ErrInvalidPhone     = NewDomainError(ErrCodeInvalidPhone, "Invalid phone number format")
	ErrCustomerNameLong = NewDomainError(ErrCodeValueTooLong, "Name must be at most 100 characters")
	ErrEmailTooLong     = NewDomainError(ErrCodeValueTooLong, "Email must be at most 254 characters")
	ErrEmailExists      = NewDomainError(ErrCodeEmailExists, "Email already exists")
	ErrInvalidPrice     = NewDomainError(ErrCodeInvalidPrice, "Price must be positive")
	ErrPriceTooLarge    = NewDomainError(ErrCodePriceTooLarge, "Price must not exceed 99999999.99")
	ErrProductNameLong  = NewDomainError(ErrCodeValueTooLong, "Name must be at most 200 characters")
	ErrNegativeStock    = NewDomainError(ErrCodeNegativeStock, "Stock cannot be negative")
	ErrCustomerNotFound = NewDomainError(ErrCodeCustomerNotFound, "Customer not found")
	ErrNoProducts       = NewDomainError(ErrCodeNoProducts, "At least one product must be selected")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrTotalTooLarge    = NewDomainError(ErrCodeTotalTooLarge, "Order total must not exceed 99999999.99")
)

// ValidationErrors groups every field-level failure found on a single input.
type ValidationErrors []*DomainError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the client-facing messages of an expected failure.
// ok is false when err is not a domain error and must be treated as an
// infrastructure failure.
func Messages(err error) (msgs []string, ok bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		msgs = make([]string, len(verrs))
		for i, e := range verrs {
			msgs[i] = e.Message
		}
		return msgs, true
	}

	var derr *DomainError
	if errors.As(err, &derr) {
		return []string{derr.Message}, true
	}

	return nil, false
}
