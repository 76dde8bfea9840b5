package transactions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/complyd/complyd/internal/testutil"
)

func insertTxn(t *testing.T, store *PostgresStore, txn Transaction) {
	t.Helper()
	_, err := store.db.ExecContext(context.Background(), `
		INSERT INTO transactions (id, supplier_name, supplier_country, amount, currency,
			transaction_date, payment_method, risk_category, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, txn.ID, txn.SupplierName, txn.SupplierCountry, txn.Amount.String(), txn.Currency,
		txn.Date, txn.PaymentMethod, txn.RiskCategory, txn.Description)
	if err != nil {
		t.Fatalf("insert transaction: %v", err)
	}
	t.Cleanup(func() {
		_, _ = store.db.ExecContext(context.Background(), "DELETE FROM transactions WHERE id = $1", txn.ID)
	})
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	store := NewPostgresStore(testutil.PGTest(t))
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	insertTxn(t, store, mkTxn("PGTEST-1", "Acme", "Germany", RiskLow, "1250.50", date))

	got, err := store.Get(context.Background(), "PGTEST-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SupplierName != "Acme" || got.SupplierCountry != "Germany" {
		t.Errorf("Get = %+v", got)
	}
	if got.Amount.String() != "1250.5" {
		t.Errorf("Amount = %s, want 1250.5", got.Amount)
	}
	if !got.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", got.Date, date)
	}

	if _, err := store.Get(context.Background(), "PGTEST-MISSING"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: err = %v, want ErrNotFound", err)
	}
}

func TestPostgresStoreListFilters(t *testing.T) {
	store := NewPostgresStore(testutil.PGTest(t))
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	insertTxn(t, store, mkTxn("PGTEST-A", "Acme", "Germany", RiskLow, "100", base))
	insertTxn(t, store, mkTxn("PGTEST-B", "Globex", "Russia", RiskHigh, "5000", base.AddDate(0, 0, 1)))

	txns, err := store.List(context.Background(), Filter{Country: "Russia"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(txns) != 1 || txns[0].ID != "PGTEST-B" {
		t.Fatalf("country filter = %v, want only PGTEST-B", txns)
	}

	txns, err = store.List(context.Background(), Filter{MinAmount: dec("1000"), Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, txn := range txns {
		if txn.Amount.LessThan(*dec("1000")) {
			t.Errorf("%s: amount %s below min filter", txn.ID, txn.Amount)
		}
	}
}
