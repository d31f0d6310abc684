package staging

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/domain"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func menu() []domain.Product {
	return []domain.Product{
		{ID: "P000001", Name: "Tea", UnitPrice: price("30.00"), Stock: 5},
		{ID: "P000002", Name: "Coffee", UnitPrice: price("45.00"), Stock: 3},
		{ID: "P000003", Name: "Bagel", UnitPrice: price("25.50"), Stock: 10},
	}
}

// sumSubtotals recomputes the total independently of Ledger.Total.
func sumSubtotals(l *Ledger) decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.Lines() {
		total = total.Add(line.Subtotal)
	}
	return total
}

func TestLedger_Add(t *testing.T) {
	l := NewLedger(menu())

	require.NoError(t, l.Add("P000001", 2))

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "P000001", lines[0].ProductID)
	assert.Equal(t, "Tea", lines[0].Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].Subtotal.Equal(price("60.00")), "subtotal = %s", lines[0].Subtotal)
	assert.Equal(t, 3, l.Available("P000001"))
}

func TestLedger_Add_MergesExistingLine(t *testing.T) {
	l := NewLedger(menu())

	require.NoError(t, l.Add("P000001", 2))
	require.NoError(t, l.Add("P000002", 1))
	require.NoError(t, l.Add("P000001", 3))

	// Exactly one line for the product, quantities summed, order preserved.
	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "P000001", lines[0].ProductID)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.True(t, lines[0].Subtotal.Equal(price("150.00")))
	assert.Equal(t, 0, l.Available("P000001"))
}

func TestLedger_Add_InsufficientStock(t *testing.T) {
	l := NewLedger(menu())

	err := l.Add("P000001", 6)
	var ins *InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, "P000001", ins.ProductID)
	assert.Equal(t, 5, ins.Available)

	// Failed call leaves everything untouched.
	assert.Empty(t, l.Lines())
	assert.Equal(t, 5, l.Available("P000001"))
}

func TestLedger_Add_Boundary(t *testing.T) {
	l := NewLedger(menu())

	// Taking the entire stock is allowed and drives availability to zero.
	require.NoError(t, l.Add("P000001", 5))
	assert.Equal(t, 0, l.Available("P000001"))

	// One more unit must fail with a ceiling of zero.
	err := l.Add("P000001", 1)
	var ins *InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, 0, ins.Available)
}

func TestLedger_Add_InvalidInput(t *testing.T) {
	l := NewLedger(menu())

	assert.ErrorIs(t, l.Add("P000001", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, l.Add("P000001", -2), ErrInvalidQuantity)
	assert.ErrorIs(t, l.Add("P999999", 1), ErrUnknownProduct)
	assert.Empty(t, l.Lines())
}

func TestLedger_Modify(t *testing.T) {
	l := NewLedger(menu())
	require.NoError(t, l.Add("P000001", 2))

	// Raise: availability shrinks by the delta.
	require.NoError(t, l.Modify("P000001", 4))
	assert.Equal(t, 1, l.Available("P000001"))
	assert.True(t, l.Lines()[0].Subtotal.Equal(price("120.00")))

	// Lower: the difference is credited back.
	require.NoError(t, l.Modify("P000001", 1))
	assert.Equal(t, 4, l.Available("P000001"))
	assert.True(t, l.Lines()[0].Subtotal.Equal(price("30.00")))
}

func TestLedger_Modify_CeilingIncludesOwnLine(t *testing.T) {
	l := NewLedger(menu())
	require.NoError(t, l.Add("P000001", 4))

	// available(1) + own 4 = ceiling 5
	require.NoError(t, l.Modify("P000001", 5))
	assert.Equal(t, 0, l.Available("P000001"))

	err := l.Modify("P000001", 6)
	var ins *InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, 5, ins.Available)
	assert.Equal(t, 5, l.Lines()[0].Quantity)
}

func TestLedger_Modify_Errors(t *testing.T) {
	l := NewLedger(menu())
	require.NoError(t, l.Add("P000001", 2))

	// Zero means "use remove", not "silently drop".
	assert.ErrorIs(t, l.Modify("P000001", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, l.Modify("P000001", -1), ErrInvalidQuantity)
	assert.ErrorIs(t, l.Modify("P000002", 1), ErrNotFound)
	assert.Equal(t, 2, l.Lines()[0].Quantity)
}

func TestLedger_RemoveRoundTrip(t *testing.T) {
	l := NewLedger(menu())
	before := l.Available("P000001")

	require.NoError(t, l.Add("P000001", 3))
	require.NoError(t, l.Remove("P000001"))

	assert.Equal(t, before, l.Available("P000001"))
	assert.Empty(t, l.Lines())
	assert.ErrorIs(t, l.Remove("P000001"), ErrNotFound)
}

func TestLedger_Remove_ReindexesRemainingLines(t *testing.T) {
	l := NewLedger(menu())
	require.NoError(t, l.Add("P000001", 1))
	require.NoError(t, l.Add("P000002", 1))
	require.NoError(t, l.Add("P000003", 1))

	require.NoError(t, l.Remove("P000002"))

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "P000001", lines[0].ProductID)
	assert.Equal(t, "P000003", lines[1].ProductID)

	// The index must follow the shifted positions.
	require.NoError(t, l.Modify("P000003", 4))
	assert.Equal(t, 4, l.Lines()[1].Quantity)
}

func TestLedger_TotalAlwaysRecomputed(t *testing.T) {
	l := NewLedger(menu())

	require.NoError(t, l.Add("P000001", 2))
	require.NoError(t, l.Add("P000003", 4))
	assert.True(t, l.Total().Equal(sumSubtotals(l)))

	require.NoError(t, l.Modify("P000003", 1))
	assert.True(t, l.Total().Equal(sumSubtotals(l)))

	require.NoError(t, l.Remove("P000001"))
	assert.True(t, l.Total().Equal(sumSubtotals(l)))
	assert.True(t, l.Total().Equal(price("25.50")))
}

func TestLedger_AvailabilityNeverNegative(t *testing.T) {
	l := NewLedger(menu())

	ops := []func() error{
		func() error { return l.Add("P000001", 3) },
		func() error { return l.Add("P000001", 3) }, // over the top, must fail
		func() error { return l.Modify("P000001", 5) },
		func() error { return l.Add("P000002", 3) },
		func() error { return l.Modify("P000002", 9) }, // must fail
		func() error { return l.Remove("P000001") },
		func() error { return l.Add("P000003", 10) },
		func() error { return l.Remove("P000002") },
	}
	for i, op := range ops {
		_ = op()
		for _, p := range menu() {
			assert.GreaterOrEqual(t, l.Available(p.ID), 0, "op %d product %s", i, p.ID)
		}
	}
}

func TestLedger_Reset(t *testing.T) {
	l := NewLedger(menu())
	require.NoError(t, l.Add("P000001", 5))
	require.NoError(t, l.Add("P000002", 2))

	l.Reset()

	assert.Empty(t, l.Lines())
	assert.True(t, l.Total().IsZero())
	for _, p := range menu() {
		assert.Equal(t, p.Stock, l.Available(p.ID))
	}
}

func TestLedger_CatalogShowsLiveAvailability(t *testing.T) {
	l := NewLedger(menu())
	require.NoError(t, l.Add("P000002", 2))

	catalog := l.Catalog()
	require.Len(t, catalog, 3)
	assert.Equal(t, "P000001", catalog[0].ProductID)
	assert.Equal(t, 5, catalog[0].Stock)
	assert.Equal(t, 1, catalog[1].Stock) // Coffee: 3 - 2 staged
}

// The worked register scenario: Tea at 30.00 with stock 5.
func TestLedger_TeaScenario(t *testing.T) {
	l := NewLedger([]domain.Product{
		{ID: "P1", Name: "Tea", UnitPrice: price("30.00"), Stock: 5},
	})

	require.NoError(t, l.Add("P1", 2))
	assert.True(t, l.Lines()[0].Subtotal.Equal(price("60.00")))
	assert.Equal(t, 3, l.Available("P1"))

	require.NoError(t, l.Modify("P1", 4))
	assert.True(t, l.Lines()[0].Subtotal.Equal(price("120.00")))
	assert.Equal(t, 1, l.Available("P1"))
	assert.True(t, l.Total().Equal(price("120.00")))
}
