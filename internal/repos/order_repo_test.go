package repos_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"tillpoint/internal/domain"
	"tillpoint/internal/repos"
)

func placeOrder(t *testing.T, db *sqlx.DB, repo *repos.OrderRepo, id string) {
	t.Helper()
	tx := db.MustBegin()
	err := repo.Create(tx, domain.OrderHeader{
		ID:       id,
		PlacedAt: "2026-08-28 12:00:00",
		Total:    decimal.RequireFromString("105.00"),
	})
	if err != nil {
		t.Fatal(err)
	}
	details := []domain.OrderDetail{
		{OrderID: id, ProductID: "P000001", Quantity: 2, Subtotal: decimal.RequireFromString("60.00")},
		{OrderID: id, ProductID: "P000002", Quantity: 1, Subtotal: decimal.RequireFromString("45.00")},
	}
	for _, d := range details {
		if err := repo.InsertDetail(tx, d); err != nil {
			t.Fatal(err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}
}

func TestOrderRepo_CreateAndGet(t *testing.T) {
	db := memdb(t)
	seedMenu(t, db)
	repo := repos.NewOrderRepo(db)

	placeOrder(t, db, repo, "O20260828120000")

	report, err := repo.Get("O20260828120000")
	if err != nil {
		t.Fatal(err)
	}
	if report.Header.Completed {
		t.Fatal("orders must start uncompleted")
	}
	if !report.Header.Total.Equal(decimal.RequireFromString("105.00")) {
		t.Fatalf("bad total: %s", report.Header.Total)
	}
	if len(report.Items) != 2 {
		t.Fatalf("want 2 lines, got %d", len(report.Items))
	}
	if report.Items[0].Name != "Tea" || report.Items[0].Qty != 2 {
		t.Fatalf("bad first line: %+v", report.Items[0])
	}

	if _, err := repo.Get("O-nope"); !errors.Is(err, repos.ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepo_CompletedSplit(t *testing.T) {
	db := memdb(t)
	seedMenu(t, db)
	repo := repos.NewOrderRepo(db)

	placeOrder(t, db, repo, "O20260828120000")
	placeOrder(t, db, repo, "O20260828120100")

	if err := repo.MarkCompleted("O20260828120000"); err != nil {
		t.Fatal(err)
	}

	pending, err := repo.ListByCompleted(false)
	if err != nil {
		t.Fatal(err)
	}
	done, err := repo.ListByCompleted(true)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].Header.ID != "O20260828120100" {
		t.Fatalf("bad pending list: %+v", pending)
	}
	if len(done) != 1 || done[0].Header.ID != "O20260828120000" {
		t.Fatalf("bad completed list: %+v", done)
	}

	if err := repo.MarkCompleted("O-nope"); !errors.Is(err, repos.ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepo_DeletedProductKeepsReadableName(t *testing.T) {
	db := memdb(t)
	seedMenu(t, db)
	orders := repos.NewOrderRepo(db)
	products := repos.NewProductRepo(db)

	placeOrder(t, db, orders, "O20260828120000")
	if err := products.SoftDelete("P000001"); err != nil {
		t.Fatal(err)
	}

	// Soft delete keeps the row, so history still shows the real name.
	report, err := orders.Get("O20260828120000")
	if err != nil {
		t.Fatal(err)
	}
	if report.Items[0].Name != "Tea" {
		t.Fatalf("want Tea, got %q", report.Items[0].Name)
	}
}
