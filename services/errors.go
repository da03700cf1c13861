package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Controllers map these to
// HTTP statuses and response codes.
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrTableNotFound        = errors.New("table not found")
	ErrAreaNotFound         = errors.New("area not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrTableAlreadyReserved = errors.New("table is already reserved")
	ErrTableOccupied        = errors.New("table is currently seated")
	ErrOrderCompleted       = errors.New("order has been settled and can no longer be modified")
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)

// ValidationError reports a malformed or non-numeric line item submission.
// Item names the offending entry so the caller can correct it.
type ValidationError struct {
	Item    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Item == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Item, e.Message)
}

// NewValidationError creates a ValidationError for the named item
func NewValidationError(item, message string) *ValidationError {
	return &ValidationError{Item: item, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
