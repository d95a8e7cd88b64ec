package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the requesting user is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// AppError wraps an underlying error with an HTTP-ish status code and a message.
// Repositories use it to report infrastructure failures without leaking driver details.
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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// StockExhaustedError indicates that a referenced product had no stock left
// when an invoice tried to consume a unit of it.
// ProductName may be empty when the error originates in the repository;
// the invoice service fills it in before the error reaches a handler.
type StockExhaustedError struct {
	ProductID   string
	ProductName string
}

func (e *StockExhaustedError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("product %s is out of stock", e.ProductName)
	}
	return fmt.Sprintf("product %s is out of stock", e.ProductID)
}
