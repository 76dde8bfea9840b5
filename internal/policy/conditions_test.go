package policy

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/complyd/complyd/internal/transactions"
)

func txnWith(amount string, country, method, risk string) transactions.Transaction {
	return transactions.Transaction{
		ID:              "TXN-TEST-000001",
		SupplierName:    "Test Supplier",
		SupplierCountry: country,
		Amount:          decimal.RequireFromString(amount),
		Currency:        "EUR",
		PaymentMethod:   method,
		RiskCategory:    risk,
	}
}

func TestAmountCondition(t *testing.T) {
	gte := AmountCondition{Threshold: decimal.RequireFromString("5000"), Compare: CompareGTE}
	gt := AmountCondition{Threshold: decimal.RequireFromString("5000"), Compare: CompareGT}

	at := txnWith("5000", "Germany", "WIRE", "LOW")
	below := txnWith("4999.99", "Germany", "WIRE", "LOW")
	above := txnWith("5000.01", "Germany", "WIRE", "LOW")

	if !gte.Matches(at) {
		t.Error("gte should match amount exactly at threshold")
	}
	if gte.Matches(below) {
		t.Error("gte should not match below threshold")
	}
	if gt.Matches(at) {
		t.Error("gt should not match amount exactly at threshold")
	}
	if !gt.Matches(above) {
		t.Error("gt should match above threshold")
	}
}

func TestCountryConditionCaseInsensitive(t *testing.T) {
	cond := CountryCondition{Countries: []string{"Iran", "Syria"}}

	if !cond.Matches(txnWith("10", "iran", "WIRE", "LOW")) {
		t.Error("country match should be case-insensitive")
	}
	if cond.Matches(txnWith("10", "Ireland", "WIRE", "LOW")) {
		t.Error("should not match countries outside the set")
	}
}

func TestMethodAndCategoryConditions(t *testing.T) {
	method := MethodCondition{Methods: []string{"CHECK", "CASH"}}
	if !method.Matches(txnWith("10", "Germany", "cash", "LOW")) {
		t.Error("method match should be case-insensitive")
	}
	if method.Matches(txnWith("10", "Germany", "WIRE", "LOW")) {
		t.Error("WIRE should not match CHECK/CASH set")
	}

	cat := CategoryCondition{Categories: []string{"HIGH", "PEP"}}
	if !cat.Matches(txnWith("10", "Germany", "WIRE", "PEP")) {
		t.Error("PEP should match")
	}
	if cat.Matches(txnWith("10", "Germany", "WIRE", "MEDIUM")) {
		t.Error("MEDIUM should not match HIGH/PEP set")
	}
}

func TestConditionValidate(t *testing.T) {
	bad := []Condition{
		AmountCondition{Threshold: decimal.RequireFromString("-1"), Compare: CompareGTE},
		AmountCondition{Threshold: decimal.RequireFromString("100"), Compare: Comparison("lt")},
		CountryCondition{},
		MethodCondition{},
		CategoryCondition{},
	}
	for i, cond := range bad {
		if err := cond.validate(); err == nil {
			t.Errorf("case %d (%s): validate should fail", i, cond.Kind())
		}
	}
}

func TestRuleJSONDecoding(t *testing.T) {
	data := []byte(`{
		"id": "AML-900",
		"name": "Test Rule",
		"policyType": "aml",
		"severity": "high",
		"remediation": "Review manually",
		"conditions": [
			{"type": "amount", "threshold": "100000"},
			{"type": "country", "countries": ["Iran"]}
		]
	}`)

	var r Rule
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Severity != SeverityHigh {
		t.Errorf("severity = %v, want high", r.Severity)
	}
	if len(r.Conditions) != 2 {
		t.Fatalf("conditions = %d, want 2", len(r.Conditions))
	}

	// Omitted compare defaults to gte
	amount, ok := r.Conditions[0].(AmountCondition)
	if !ok {
		t.Fatalf("first condition is %T, want AmountCondition", r.Conditions[0])
	}
	if amount.Compare != CompareGTE {
		t.Errorf("compare = %q, want gte default", amount.Compare)
	}
}

func TestRuleJSONDecodingErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing threshold", `{"id": "R1", "policyType": "aml", "severity": "low",
			"conditions": [{"type": "amount"}]}`},
		{"unknown condition type", `{"id": "R2", "policyType": "aml", "severity": "low",
			"conditions": [{"type": "weekday"}]}`},
		{"unknown severity", `{"id": "R3", "policyType": "aml", "severity": "urgent",
			"conditions": [{"type": "country", "countries": ["Iran"]}]}`},
	}

	for _, tc := range cases {
		var r Rule
		err := json.Unmarshal([]byte(tc.data), &r)
		if err == nil {
			t.Errorf("%s: unmarshal should fail", tc.name)
			continue
		}
		var cerr *CatalogError
		if !errors.As(err, &cerr) {
			t.Errorf("%s: error is %T, want *CatalogError", tc.name, err)
		}
	}
}
