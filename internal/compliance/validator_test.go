package compliance

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/complyd/complyd/internal/policy"
	"github.com/complyd/complyd/internal/transactions"
)

func testProvider() *policy.Provider {
	return policy.NewProvider(policy.DefaultCatalog())
}

func txn(id, amount, country, method, risk string) transactions.Transaction {
	return transactions.Transaction{
		ID:              id,
		SupplierName:    "Supplier " + id,
		SupplierCountry: country,
		Amount:          decimal.RequireFromString(amount),
		Currency:        "EUR",
		Date:            time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		PaymentMethod:   method,
		RiskCategory:    risk,
	}
}

func TestValidateEmptyBatch(t *testing.T) {
	v := NewValidator(testProvider(), 1)

	_, _, err := v.Validate(context.Background(), nil, policy.TypeAML)
	if !errors.Is(err, ErrEmptyTransactions) {
		t.Fatalf("err = %v, want ErrEmptyTransactions", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err is %T, want *ValidationError", err)
	}
}

func TestValidateUnknownPolicy(t *testing.T) {
	v := NewValidator(testProvider(), 1)

	_, _, err := v.Validate(context.Background(), []transactions.Transaction{
		txn("TXN-1", "100", "Germany", "WIRE", "LOW"),
	}, policy.Type("tax"))
	if !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("err = %v, want ErrUnknownPolicy", err)
	}
}

func TestValidateCompliantBatch(t *testing.T) {
	v := NewValidator(testProvider(), 1)

	violations, status, err := v.Validate(context.Background(), []transactions.Transaction{
		txn("TXN-1", "100", "Germany", "WIRE", "LOW"),
		txn("TXN-2", "250", "France", "WIRE", "LOW"),
	}, policy.TypeAML)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if len(violations) != 0 {
		t.Errorf("violations = %d, want 0", len(violations))
	}
	if status.Overall != Compliant {
		t.Errorf("overall = %s, want COMPLIANT", status.Overall)
	}
	if status.HighestSeverity != nil {
		t.Error("HighestSeverity should be nil for a clean run")
	}
	if status.TotalTransactions != 2 {
		t.Errorf("TotalTransactions = %d, want 2", status.TotalTransactions)
	}
}

func TestValidateViolationsAndAggregation(t *testing.T) {
	v := NewValidator(testProvider(), 1)

	// TXN-1: AML-001 (high). TXN-2: AML-003 (high) + AML-005 (critical).
	violations, status, err := v.Validate(context.Background(), []transactions.Transaction{
		txn("TXN-1", "150000", "USA", "WIRE", "LOW"),
		txn("TXN-2", "4000", "Russia", "WIRE", "HIGH"),
	}, policy.TypeAML)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	wantRules := []string{"AML-001", "AML-003", "AML-005"}
	if len(violations) != len(wantRules) {
		t.Fatalf("violations = %d, want %d", len(violations), len(wantRules))
	}
	for i, want := range wantRules {
		if violations[i].RuleID != want {
			t.Errorf("violations[%d].RuleID = %s, want %s", i, violations[i].RuleID, want)
		}
	}

	if status.TotalViolations != 3 {
		t.Errorf("TotalViolations = %d, want 3", status.TotalViolations)
	}
	if status.SeverityCounts.High != 2 || status.SeverityCounts.Critical != 1 {
		t.Errorf("severity counts = %+v, want high=2 critical=1", status.SeverityCounts)
	}
	if status.SeverityCounts.Total() != status.TotalViolations {
		t.Error("severity counts must sum to TotalViolations")
	}
	if status.Overall != NonCompliant {
		t.Errorf("overall = %s, want NON_COMPLIANT", status.Overall)
	}
	if status.HighestSeverity == nil || *status.HighestSeverity != policy.SeverityCritical {
		t.Errorf("HighestSeverity = %v, want critical", status.HighestSeverity)
	}
}

func TestValidateParallelMatchesSequential(t *testing.T) {
	var batch []transactions.Transaction
	countries := []string{"Germany", "Russia", "USA", "Iran", "France"}
	methods := []string{"WIRE", "CHECK", "CASH"}
	risks := []string{"LOW", "MEDIUM", "HIGH", "PEP"}
	for i := 0; i < 200; i++ {
		batch = append(batch, txn(
			fmt.Sprintf("TXN-%04d", i),
			fmt.Sprintf("%d", (i*937)%200000),
			countries[i%len(countries)],
			methods[i%len(methods)],
			risks[i%len(risks)],
		))
	}

	seq := NewValidator(testProvider(), 1)
	par := NewValidator(testProvider(), 8)

	seqViolations, seqStatus, err := seq.Validate(context.Background(), batch, policy.TypeAML)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}

	for run := 0; run < 5; run++ {
		parViolations, parStatus, err := par.Validate(context.Background(), batch, policy.TypeAML)
		if err != nil {
			t.Fatalf("parallel run %d: %v", run, err)
		}
		if !reflect.DeepEqual(seqViolations, parViolations) {
			t.Fatalf("run %d: parallel violations differ from sequential", run)
		}
		if !reflect.DeepEqual(seqStatus, parStatus) {
			t.Fatalf("run %d: parallel status differs from sequential", run)
		}
	}
}

func TestValidateCancelledContext(t *testing.T) {
	var batch []transactions.Transaction
	for i := 0; i < 100; i++ {
		batch = append(batch, txn(fmt.Sprintf("TXN-%04d", i), "100", "Germany", "WIRE", "LOW"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := NewValidator(testProvider(), 4)
	_, _, err := v.Validate(ctx, batch, policy.TypeAML)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
