package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness violation.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart indicates an order placement against a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidStatus indicates an unknown order status value.
	ErrInvalidStatus = errors.New("invalid order status")
)

// InsufficientStockError names the first product whose stock could not
// cover the requested quantity. The placement performs no writes when
// this is returned.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}
