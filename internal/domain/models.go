package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	UnitPrice decimal.Decimal `db:"price" json:"unitPrice"`
	Stock     int             `db:"stock" json:"stock"`
	Deleted   bool            `db:"deleted" json:"-"`
}

// CartLine is one staged line in a session's cart. At most one line per
// product; merging is the ledger's job, not the caller's.
type CartLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderHeader struct {
	ID        string          `db:"id" json:"id"`
	PlacedAt  string          `db:"placed_at" json:"placedAt"`
	Total     decimal.Decimal `db:"total" json:"total"`
	Completed bool            `db:"completed" json:"completed"`
}

type OrderDetail struct {
	OrderID   string          `db:"order_id" json:"-"`
	ProductID string          `db:"product_id" json:"productId"`
	Quantity  int             `db:"qty" json:"quantity"`
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
}
