package models

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application
var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("product not found in cart")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrEmptyCart       = errors.New("cannot create order from empty cart")
	ErrInvalidInput    = errors.New("invalid input")
)

// RequiredFieldError reports a missing mandatory address field. Role names the
// address the field belongs to ("shipping" or "billing").
type RequiredFieldError struct {
	Field string
	Role  string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s is required in %s address", e.Field, e.Role)
}
