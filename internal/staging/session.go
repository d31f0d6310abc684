package staging

import (
	"sync"

	"github.com/shopspring/decimal"

	"tillpoint/internal/domain"
)

// CartView is what the presentation layer renders after any cart operation.
type CartView struct {
	Lines []domain.CartLine `json:"lines"`
	Total decimal.Decimal   `json:"total"`
}

// Session owns one ledger and serializes every operation on it. While a
// submission is in flight the cart is locked: add/modify/remove return
// ErrSubmitting until the transaction resolves one way or the other.
type Session struct {
	ID string

	mu         sync.Mutex
	ledger     *Ledger
	submitting bool
}

func newSession(id string, products []domain.Product) *Session {
	return &Session{ID: id, ledger: NewLedger(products)}
}

func (s *Session) Add(productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitting
	}
	return s.ledger.Add(productID, qty)
}

func (s *Session) Modify(productID string, newQty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitting
	}
	return s.ledger.Modify(productID, newQty)
}

func (s *Session) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitting
	}
	return s.ledger.Remove(productID)
}

func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartView{Lines: s.ledger.Lines(), Total: s.ledger.Total()}
}

func (s *Session) Catalog() []SnapshotEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Catalog()
}

// BeginSubmit freezes the cart for submission and hands back the finalized
// lines and total. Rejects empty carts and re-entry while a submission is
// already pending.
func (s *Session) BeginSubmit() ([]domain.CartLine, decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return nil, decimal.Zero, ErrSubmitting
	}
	if s.ledger.Len() == 0 {
		return nil, decimal.Zero, ErrEmptyCart
	}
	s.submitting = true
	return s.ledger.Lines(), s.ledger.Total(), nil
}

// FinishSubmit resolves a successful submission: the cart is cleared and the
// snapshot replaced with freshly loaded products. When the reload itself
// failed, pass nil to keep the old snapshot (stale but safe).
func (s *Session) FinishSubmit(fresh []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if fresh != nil {
		s.ledger = NewLedger(fresh)
	} else {
		s.ledger.Reset()
	}
}

// AbortSubmit resolves a failed submission. The ledger is left exactly as it
// was so the operator can adjust and retry without re-entering the cart.
func (s *Session) AbortSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

// Registry maps session ids to live staging sessions. Each terminal gets an
// independent session; the database is the only state they share.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Start creates (or replaces) the session for id with a fresh snapshot.
func (r *Registry) Start(id string, products []domain.Product) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := newSession(id, products)
	r.sessions[id] = s
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Drop discards a session and its staged cart. Durable state is untouched.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
