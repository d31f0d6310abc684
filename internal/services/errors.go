package services

import (
	"errors"
	"fmt"
)

var (
	ErrNameTaken     = errors.New("product name already exists")
	ErrEmptyName     = errors.New("name must not be empty")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
)

// StockRaceError means the commit-time stock check failed: the session's
// snapshot promised more stock than the database still held at submit time.
// The whole submission rolled back; nothing was written.
type StockRaceError struct {
	ProductID string
}

func (e *StockRaceError) Error() string {
	return fmt.Sprintf("stock for %s was depleted by another session", e.ProductID)
}
