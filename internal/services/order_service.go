package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tillpoint/internal/domain"
	"tillpoint/internal/repos"
	"tillpoint/internal/staging"
)

// OrderService turns a finalized cart into durable order rows and stock
// decrements, all inside one transaction.
type OrderService struct {
	db       *sqlx.DB
	products *repos.ProductRepo
	orders   *repos.OrderRepo
	ids      *repos.OrderIDs
}

func NewOrderService(db *sqlx.DB, products *repos.ProductRepo, orders *repos.OrderRepo, ids *repos.OrderIDs) *OrderService {
	return &OrderService{db: db, products: products, orders: orders, ids: ids}
}

// Submit writes one order header, one detail row per cart line, and one
// conditional stock decrement per line. Any failure rolls the whole batch
// back and leaves the session's cart untouched for a retry; on success the
// cart is cleared and the session gets a fresh catalog snapshot.
//
// Each decrement re-checks persisted stock (stock >= qty). The lenient
// alternative, trusting the session's bookkeeping outright, would admit
// negative stock when two terminals sell the same item concurrently.
func (s *OrderService) Submit(sess *staging.Session) (string, error) {
	lines, total, err := sess.BeginSubmit()
	if err != nil {
		return "", err
	}

	now := time.Now()
	header := domain.OrderHeader{
		ID:       s.ids.Next(now),
		PlacedAt: now.Format("2006-01-02 15:04:05"),
		Total:    total,
	}

	if err := s.writeOrder(header, lines); err != nil {
		sess.AbortSubmit()
		return "", err
	}

	// Refresh the snapshot so the operator sees the decremented stock. If
	// the reload fails the session keeps its old snapshot; the order itself
	// is already durable.
	fresh, lerr := s.products.ListAvailable()
	if lerr != nil {
		fresh = nil
	}
	sess.FinishSubmit(fresh)
	return header.ID, nil
}

func (s *OrderService) writeOrder(header domain.OrderHeader, lines []domain.CartLine) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin submit tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.orders.Create(tx, header); err != nil {
		return fmt.Errorf("insert order header: %w", err)
	}
	for _, line := range lines {
		detail := domain.OrderDetail{
			OrderID:   header.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal,
		}
		if err := s.orders.InsertDetail(tx, detail); err != nil {
			return fmt.Errorf("insert order detail %s: %w", line.ProductID, err)
		}
		if err := s.products.DecrementStock(tx, line.ProductID, line.Quantity); err != nil {
			if errors.Is(err, repos.ErrStockConflict) {
				return &StockRaceError{ProductID: line.ProductID}
			}
			return fmt.Errorf("decrement stock %s: %w", line.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit submit tx: %w", err)
	}
	return nil
}
