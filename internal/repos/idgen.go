package repos

import (
	"fmt"
	"sync"
	"time"
)

// OrderIDs issues time-derived order ids, O20240131093055, matching the
// receipts the register prints. Two submissions in the same second get a
// sequence suffix so ids never collide within one process.
type OrderIDs struct {
	mu    sync.Mutex
	stamp string
	seq   int
}

func NewOrderIDs() *OrderIDs { return &OrderIDs{} }

func (g *OrderIDs) Next(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	stamp := t.Format("20060102150405")
	if stamp != g.stamp {
		g.stamp = stamp
		g.seq = 0
		return "O" + stamp
	}
	g.seq++
	return fmt.Sprintf("O%s-%d", stamp, g.seq)
}
