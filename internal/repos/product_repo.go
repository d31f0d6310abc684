package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"tillpoint/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// ListAvailable returns every non-deleted product, the rows a staging
// session snapshots when it starts.
func (r *ProductRepo) ListAvailable() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT id, name, price, stock, deleted
	  FROM products
	  WHERE deleted = 0
	  ORDER BY id
	`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, price, stock, deleted
	  FROM products
	  WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrProductNotFound
	}
	return p, err
}

// NameInUse reports whether a non-deleted product other than excludeID
// already carries this name (case-insensitive).
func (r *ProductRepo) NameInUse(name, excludeID string) (bool, error) {
	var one int
	err := r.db.Get(&one, `
	  SELECT 1 FROM products
	  WHERE LOWER(name) = LOWER(?) AND deleted = 0 AND id != ?
	`, name, excludeID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a product under a freshly generated id (P000001, P000002, ...).
func (r *ProductRepo) Create(name string, price decimal.Decimal, stock int) (domain.Product, error) {
	id, err := r.nextID()
	if err != nil {
		return domain.Product{}, fmt.Errorf("generate product id: %w", err)
	}
	_, err = r.db.Exec(`
	  INSERT INTO products(id, name, price, stock, deleted)
	  VALUES (?, ?, ?, ?, 0)
	`, id, name, price, stock)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return domain.Product{ID: id, Name: name, UnitPrice: price, Stock: stock}, nil
}

// nextID derives the next sequential id from the highest one issued so far.
// Ids are never reused: soft-deleted rows still count.
func (r *ProductRepo) nextID() (string, error) {
	var maxSeq sql.NullInt64
	if err := r.db.Get(&maxSeq, `
	  SELECT MAX(CAST(SUBSTR(id, 2) AS INTEGER)) FROM products
	`); err != nil {
		return "", err
	}
	return fmt.Sprintf("P%06d", maxSeq.Int64+1), nil
}

func (r *ProductRepo) Update(id, name string, price decimal.Decimal, stock int) error {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name = ?, price = ?, stock = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND deleted = 0
	`, name, price, stock, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// SoftDelete hides a product from future snapshots. Order history keeps
// referencing the row, so it is never physically removed.
func (r *ProductRepo) SoftDelete(id string) error {
	res, err := r.db.Exec(`
	  UPDATE products SET deleted = 1, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DecrementStock subtracts qty inside the caller's transaction, but only if
// enough persisted stock remains. Zero rows affected means another session
// drained the stock after this cart's snapshot was taken.
func (r *ProductRepo) DecrementStock(tx *sqlx.Tx, productID string, qty int) error {
	res, err := tx.Exec(`
	  UPDATE products
	  SET stock = stock - ?
	  WHERE id = ? AND stock >= ?
	`, qty, productID, qty)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStockConflict
	}
	return nil
}
