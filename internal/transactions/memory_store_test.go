package transactions

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func mkTxn(id, supplier, country, risk, amount string, date time.Time) Transaction {
	return Transaction{
		ID:              id,
		SupplierName:    supplier,
		SupplierCountry: country,
		Amount:          decimal.RequireFromString(amount),
		Currency:        "EUR",
		Date:            date,
		PaymentMethod:   MethodWire,
		RiskCategory:    risk,
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store.Put(
		mkTxn("TXN-1", "Acme", "Germany", RiskLow, "100", base),
		mkTxn("TXN-2", "Acme", "Germany", RiskLow, "200", base.AddDate(0, 0, 2)),
		mkTxn("TXN-3", "Acme", "Germany", RiskLow, "300", base.AddDate(0, 0, 1)),
	)

	txns, err := store.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txns))
	}
	for i, want := range []string{"TXN-2", "TXN-3", "TXN-1"} {
		if txns[i].ID != want {
			t.Errorf("txns[%d].ID = %s, want %s", i, txns[i].ID, want)
		}
	}
}

func TestMemoryStorePutReplaces(t *testing.T) {
	store := NewMemoryStore()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store.Put(mkTxn("TXN-1", "Acme", "Germany", RiskLow, "100", date))
	store.Put(mkTxn("TXN-1", "Acme", "Germany", RiskHigh, "999", date))

	if n, _ := store.Count(context.Background()); n != 1 {
		t.Fatalf("Count = %d, want 1 after replacement", n)
	}
	txn, err := store.Get(context.Background(), "TXN-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if txn.RiskCategory != RiskHigh {
		t.Errorf("RiskCategory = %s, want the replacement record", txn.RiskCategory)
	}
}

func TestMemoryStoreListFilters(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store.Put(
		mkTxn("TXN-1", "Acme", "Germany", RiskLow, "100", base),
		mkTxn("TXN-2", "Globex", "Russia", RiskHigh, "5000", base.AddDate(0, 0, 1)),
		mkTxn("TXN-3", "Acme", "France", RiskLow, "250000", base.AddDate(0, 0, 2)),
	)

	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"by supplier", Filter{SupplierName: "Acme"}, []string{"TXN-3", "TXN-1"}},
		{"by country", Filter{Country: "Russia"}, []string{"TXN-2"}},
		{"by risk", Filter{RiskCategory: RiskHigh}, []string{"TXN-2"}},
		{"min amount", Filter{MinAmount: dec("5000")}, []string{"TXN-3", "TXN-2"}},
		{"max amount", Filter{MaxAmount: dec("100")}, []string{"TXN-1"}},
		{"date window", Filter{StartDate: base.AddDate(0, 0, 1), EndDate: base.AddDate(0, 0, 1)}, []string{"TXN-2"}},
		{"limit", Filter{Limit: 1}, []string{"TXN-3"}},
		{"no match", Filter{Country: "Japan"}, nil},
	}

	for _, tc := range cases {
		txns, err := store.List(context.Background(), tc.filter)
		if err != nil {
			t.Fatalf("%s: List: %v", tc.name, err)
		}
		if len(txns) != len(tc.want) {
			t.Errorf("%s: got %d transactions, want %d", tc.name, len(txns), len(tc.want))
			continue
		}
		for i, want := range tc.want {
			if txns[i].ID != want {
				t.Errorf("%s: txns[%d].ID = %s, want %s", tc.name, i, txns[i].ID, want)
			}
		}
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "TXN-MISSING"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSeedDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	a := NewMemoryStore()
	b := NewMemoryStore()
	Seed(a, 50, now, 42)
	Seed(b, 50, now, 42)

	txnsA, _ := a.List(context.Background(), Filter{Limit: 100})
	txnsB, _ := b.List(context.Background(), Filter{Limit: 100})
	if len(txnsA) != 50 || len(txnsB) != 50 {
		t.Fatalf("seeded %d and %d transactions, want 50 each", len(txnsA), len(txnsB))
	}
	for i := range txnsA {
		if txnsA[i].ID != txnsB[i].ID || !txnsA[i].Amount.Equal(txnsB[i].Amount) {
			t.Fatalf("seed must be deterministic, records diverge at %d", i)
		}
	}
}

func TestSeedRecordShape(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	Seed(store, 200, now, 1)

	txns, _ := store.List(context.Background(), Filter{Limit: 1000})
	oldest := now.AddDate(0, 0, -365)
	for _, txn := range txns {
		if !strings.HasPrefix(txn.ID, "TXN-") {
			t.Fatalf("ID %q missing TXN- prefix", txn.ID)
		}
		if txn.SupplierName == "" || txn.SupplierCountry == "" {
			t.Fatalf("%s: supplier fields must be populated", txn.ID)
		}
		if txn.Amount.LessThan(decimal.NewFromInt(100)) {
			t.Fatalf("%s: amount %s below the seed floor", txn.ID, txn.Amount)
		}
		if txn.Date.Before(oldest) || txn.Date.After(now) {
			t.Fatalf("%s: date %s outside the seed window", txn.ID, txn.Date)
		}
		switch txn.PaymentMethod {
		case MethodWire, MethodCheck, MethodCash:
		default:
			t.Fatalf("%s: unknown payment method %q", txn.ID, txn.PaymentMethod)
		}
		switch txn.RiskCategory {
		case RiskLow, RiskMedium, RiskHigh, RiskPEP:
		default:
			t.Fatalf("%s: unknown risk category %q", txn.ID, txn.RiskCategory)
		}
	}
}
