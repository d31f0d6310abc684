package staging

import (
	"sort"

	"github.com/shopspring/decimal"

	"tillpoint/internal/domain"
)

// SnapshotEntry is the per-product view captured when a session starts.
// Stock is the persisted stock at load time; it never changes for the life
// of the snapshot.
type SnapshotEntry struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Stock     int             `json:"stock"`
}

// Ledger holds one session's cart plus the stock still available to reserve
// per product. Availability is session-local bookkeeping only: nothing here
// touches durable state until the cart is submitted, so a second terminal's
// reservations are invisible to this ledger.
//
// Not safe for concurrent use; the owning Session serializes calls.
type Ledger struct {
	snapshot  map[string]SnapshotEntry
	available map[string]int // productID -> snapshot stock minus staged qty
	lines     []domain.CartLine
	index     map[string]int // productID -> position in lines
}

func NewLedger(products []domain.Product) *Ledger {
	l := &Ledger{
		snapshot:  make(map[string]SnapshotEntry, len(products)),
		available: make(map[string]int, len(products)),
		index:     make(map[string]int),
	}
	for _, p := range products {
		l.snapshot[p.ID] = SnapshotEntry{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Stock:     p.Stock,
		}
		l.available[p.ID] = p.Stock
	}
	return l
}

// Available returns the stock still free to reserve for a product.
// Unknown products report zero.
func (l *Ledger) Available(productID string) int {
	return l.available[productID]
}

// Add stages qty units of a product, merging into an existing line when the
// product is already in the cart. The merged quantity is validated against
// the available stock as it stood before this call.
func (l *Ledger) Add(productID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	entry, ok := l.snapshot[productID]
	if !ok {
		return ErrUnknownProduct
	}
	avail := l.available[productID]
	if qty > avail {
		return &InsufficientStockError{ProductID: productID, Available: avail}
	}

	if pos, exists := l.index[productID]; exists {
		merged := l.lines[pos].Quantity + qty
		l.lines[pos].Quantity = merged
		l.lines[pos].Subtotal = entry.UnitPrice.Mul(decimal.NewFromInt(int64(merged)))
	} else {
		l.lines = append(l.lines, domain.CartLine{
			ProductID: productID,
			Name:      entry.Name,
			Quantity:  qty,
			Subtotal:  entry.UnitPrice.Mul(decimal.NewFromInt(int64(qty))),
		})
		l.index[productID] = len(l.lines) - 1
	}

	l.available[productID] = avail - qty
	return nil
}

// Modify rewrites an existing line's quantity. The ceiling the operator may
// set is the free stock plus the quantity the line already holds. A quantity
// of zero is rejected; callers wanting to drop the line use Remove.
func (l *Ledger) Modify(productID string, newQty int) error {
	pos, exists := l.index[productID]
	if !exists {
		return ErrNotFound
	}
	if newQty < 1 {
		return ErrInvalidQuantity
	}

	oldQty := l.lines[pos].Quantity
	ceiling := l.available[productID] + oldQty
	if newQty > ceiling {
		return &InsufficientStockError{ProductID: productID, Available: ceiling}
	}

	entry := l.snapshot[productID]
	l.available[productID] -= newQty - oldQty
	l.lines[pos].Quantity = newQty
	l.lines[pos].Subtotal = entry.UnitPrice.Mul(decimal.NewFromInt(int64(newQty)))
	return nil
}

// Remove drops a line and credits its quantity back to available stock.
func (l *Ledger) Remove(productID string) error {
	pos, exists := l.index[productID]
	if !exists {
		return ErrNotFound
	}

	l.available[productID] += l.lines[pos].Quantity
	l.lines = append(l.lines[:pos], l.lines[pos+1:]...)
	l.rebuildIndex()
	return nil
}

// rebuildIndex recomputes the productID -> position map from scratch after a
// structural change. Linear, but it cannot drift from the line slice.
func (l *Ledger) rebuildIndex() {
	l.index = make(map[string]int, len(l.lines))
	for i, line := range l.lines {
		l.index[line.ProductID] = i
	}
}

// Total recomputes the cart total from the current lines every time.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.lines {
		total = total.Add(line.Subtotal)
	}
	return total
}

// Lines returns a copy of the staged lines in insertion order.
func (l *Ledger) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len reports how many lines are staged.
func (l *Ledger) Len() int { return len(l.lines) }

// Catalog lists the snapshot with live availability, for rendering the
// product grid. Sorted by product id so output is stable.
func (l *Ledger) Catalog() []SnapshotEntry {
	out := make([]SnapshotEntry, 0, len(l.snapshot))
	for id, entry := range l.snapshot {
		entry.Stock = l.available[id]
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Reset clears the cart and restores availability to the snapshot's stock.
func (l *Ledger) Reset() {
	l.lines = nil
	l.index = make(map[string]int)
	for id, entry := range l.snapshot {
		l.available[id] = entry.Stock
	}
}
