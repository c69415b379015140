package booking

import (
	"errors"
	"fmt"
)

// Error codes.
const (
	CodeValidation = "validation"
	CodeNotFound   = "not_found"
	CodeInternal   = "internal"
)

// BookingError carries a code the HTTP layer maps to a status.
type BookingError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error { return e.Err }

func NewValidationError(msg string) error {
	return &BookingError{Code: CodeValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &BookingError{Code: CodeNotFound, Message: msg}
}

func NewInternalError(msg string, err error) error {
	return &BookingError{Code: CodeInternal, Message: msg, Err: err}
}

// ErrorCode returns the BookingError code of err, or CodeInternal.
func ErrorCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeInternal
}

// IsValidation reports whether err is a client input problem.
func IsValidation(err error) bool {
	return ErrorCode(err) == CodeValidation
}
