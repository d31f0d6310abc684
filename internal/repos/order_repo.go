package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"tillpoint/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// DetailRow is an order line with its product name resolved for display.
type DetailRow struct {
	ProductID string          `db:"product_id" json:"productId"`
	Name      string          `db:"name" json:"name"`
	Qty       int             `db:"qty" json:"quantity"`
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
}

// OrderReport bundles a header with its lines for the report views.
type OrderReport struct {
	Header domain.OrderHeader `json:"order"`
	Items  []DetailRow        `json:"items"`
}

// Create inserts the order header inside the caller's transaction.
// Orders always start uncompleted; fulfillment flips the flag later.
func (r *OrderRepo) Create(tx *sqlx.Tx, h domain.OrderHeader) error {
	_, err := tx.Exec(`
	  INSERT INTO orders(id, placed_at, total, completed)
	  VALUES (?, ?, ?, 0)
	`, h.ID, h.PlacedAt, h.Total)
	return err
}

// InsertDetail inserts a single order line inside the caller's transaction.
func (r *OrderRepo) InsertDetail(tx *sqlx.Tx, d domain.OrderDetail) error {
	_, err := tx.Exec(`
	  INSERT INTO order_items(order_id, product_id, qty, subtotal)
	  VALUES (?, ?, ?, ?)
	`, d.OrderID, d.ProductID, d.Quantity, d.Subtotal)
	return err
}

func (r *OrderRepo) Get(orderID string) (OrderReport, error) {
	var h domain.OrderHeader
	err := r.db.Get(&h, `
	  SELECT id, placed_at, total, completed FROM orders WHERE id = ?
	`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderReport{}, ErrOrderNotFound
	}
	if err != nil {
		return OrderReport{}, err
	}

	items, err := r.details(orderID)
	if err != nil {
		return OrderReport{}, err
	}
	return OrderReport{Header: h, Items: items}, nil
}

func (r *OrderRepo) details(orderID string) ([]DetailRow, error) {
	var items []DetailRow
	err := r.db.Select(&items, `
	  SELECT oi.product_id,
	         COALESCE(p.name, '[deleted] ' || oi.product_id) AS name,
	         oi.qty, oi.subtotal
	  FROM order_items oi
	  LEFT JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY oi.product_id
	`, orderID)
	return items, err
}

// ListByCompleted returns orders on one side of the fulfillment split,
// oldest first, each with its lines.
func (r *OrderRepo) ListByCompleted(completed bool) ([]OrderReport, error) {
	var headers []domain.OrderHeader
	err := r.db.Select(&headers, `
	  SELECT id, placed_at, total, completed
	  FROM orders
	  WHERE completed = ?
	  ORDER BY id
	`, completed)
	if err != nil {
		return nil, err
	}

	out := make([]OrderReport, 0, len(headers))
	for _, h := range headers {
		items, err := r.details(h.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, OrderReport{Header: h, Items: items})
	}
	return out, nil
}

// MarkCompleted flips an order to completed (the fulfillment workflow).
func (r *OrderRepo) MarkCompleted(orderID string) error {
	res, err := r.db.Exec(`UPDATE orders SET completed = 1 WHERE id = ?`, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}
