package repos

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	// ErrStockConflict means a conditional decrement found less persisted
	// stock than the order needs (another terminal got there first).
	ErrStockConflict = errors.New("persisted stock below requested quantity")
)
