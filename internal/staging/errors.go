package staging

import (
	"errors"
	"fmt"
)

// Common errors returned by the ledger and session registry
var (
	ErrUnknownProduct  = errors.New("product not in catalog snapshot")
	ErrNotFound        = errors.New("product not in cart")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptyCart       = errors.New("cart is empty, nothing to submit")
	ErrSubmitting      = errors.New("submission in progress, cart is locked")
	ErrSessionNotFound = errors.New("staging session not found")
)

// InsufficientStockError carries the current ceiling so the caller can show
// the operator how much is still available.
type InsufficientStockError struct {
	ProductID string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: only %d available", e.ProductID, e.Available)
}
