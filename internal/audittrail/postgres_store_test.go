package audittrail

import (
	"context"
	"errors"
	"testing"

	"github.com/complyd/complyd/internal/testutil"
)

func TestPostgresStoreRecordAndGet(t *testing.T) {
	store := NewPostgresStore(testutil.PGTest(t))

	saved, err := store.Record(context.Background(), &Entry{
		ReportType:       "aml",
		PolicyType:       "aml",
		Scope:            "pgtest",
		TransactionCount: 10,
		ViolationCount:   2,
		OverallStatus:    "NON_COMPLIANT",
		Report:           []byte(`{"reportType":"aml"}`),
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	t.Cleanup(func() {
		_, _ = store.db.ExecContext(context.Background(), "DELETE FROM audit_trail WHERE id = $1", saved.ID)
	})

	if saved.ID == 0 {
		t.Error("Record must assign a run ID")
	}
	if saved.Timestamp.IsZero() {
		t.Error("Record must stamp the entry")
	}

	got, err := store.Get(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Scope != "pgtest" || got.ViolationCount != 2 {
		t.Errorf("Get = %+v", got)
	}
	if string(got.Report) != `{"reportType": "aml"}` && string(got.Report) != `{"reportType":"aml"}` {
		t.Errorf("Report snapshot = %s", got.Report)
	}

	if _, err := store.Get(context.Background(), -1); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing run: err = %v, want ErrNotFound", err)
	}
}

func TestPostgresStoreQuery(t *testing.T) {
	store := NewPostgresStore(testutil.PGTest(t))

	var ids []int64
	for _, rt := range []string{"aml", "financial"} {
		saved, err := store.Record(context.Background(), &Entry{
			ReportType:    rt,
			PolicyType:    "aml",
			Scope:         "pgtest-query",
			OverallStatus: "COMPLIANT",
			Report:        []byte(`{}`),
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		ids = append(ids, saved.ID)
	}
	t.Cleanup(func() {
		for _, id := range ids {
			_, _ = store.db.ExecContext(context.Background(), "DELETE FROM audit_trail WHERE id = $1", id)
		}
	})

	entries, err := store.Query(context.Background(), Query{ReportType: "financial", Limit: 10})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	for _, e := range entries {
		if e.ReportType != "financial" {
			t.Errorf("entry %d has report type %s", e.ID, e.ReportType)
		}
	}

	entries, err = store.Query(context.Background(), Query{Limit: 2})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) > 2 {
		t.Errorf("limit 2 returned %d entries", len(entries))
	}
	if len(entries) == 2 && entries[0].ID < entries[1].ID {
		t.Error("entries must be newest first")
	}
}
