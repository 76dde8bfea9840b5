package mcpserver

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormatTransactionList(t *testing.T) {
	raw := json.RawMessage(`{
		"count": 2,
		"transactions": [
			{"transactionId": "TXN-1", "supplierName": "Acme", "supplierCountry": "Germany",
			 "amount": "1250.50", "currency": "EUR", "paymentMethod": "WIRE", "riskCategory": "LOW"},
			{"transactionId": "TXN-2", "supplierName": "Globex", "supplierCountry": "Russia",
			 "amount": "5000", "currency": "EUR", "paymentMethod": "CASH", "riskCategory": "HIGH"}
		]
	}`)

	out, err := formatTransactionList(raw)
	if err != nil {
		t.Fatalf("formatTransactionList: %v", err)
	}
	if !strings.Contains(out, "Found 2 transactions") {
		t.Errorf("missing count header:\n%s", out)
	}
	if !strings.Contains(out, "TXN-1 | 1250.50 EUR | Acme (Germany) | WIRE | risk LOW") {
		t.Errorf("missing transaction line:\n%s", out)
	}
}

func TestFormatTransactionListEmpty(t *testing.T) {
	out, err := formatTransactionList(json.RawMessage(`{"count": 0, "transactions": []}`))
	if err != nil {
		t.Fatalf("formatTransactionList: %v", err)
	}
	if out != "No transactions found." {
		t.Errorf("out = %q", out)
	}
}

func TestFormatValidationResult(t *testing.T) {
	raw := json.RawMessage(`{
		"status": {
			"policyType": "aml",
			"totalTransactions": 5,
			"totalViolations": 2,
			"severityCounts": {"low": 0, "medium": 0, "high": 1, "critical": 1},
			"overall": "NON_COMPLIANT",
			"highestSeverity": "critical"
		},
		"violations": [
			{"transactionId": "TXN-1", "ruleId": "AML-001", "ruleName": "High Value Transaction",
			 "severity": "high", "description": "Amount exceeds threshold",
			 "supplierName": "Acme", "country": "USA", "amount": "150000"}
		]
	}`)

	out, err := formatValidationResult(raw)
	if err != nil {
		t.Fatalf("formatValidationResult: %v", err)
	}
	for _, want := range []string{
		"Overall: NON_COMPLIANT",
		"Transactions evaluated: 5",
		"Violations: 2 (critical 1, high 1, medium 0, low 0)",
		"Highest severity: critical",
		"[HIGH] High Value Transaction (AML-001)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatReport(t *testing.T) {
	raw := json.RawMessage(`{
		"report": {
			"reportType": "aml",
			"period": "2026-Q1",
			"generatedAt": "2026-04-01T00:00:00Z",
			"status": {
				"policyType": "aml", "totalTransactions": 10, "totalViolations": 0,
				"severityCounts": {}, "overall": "COMPLIANT"
			},
			"violations": [],
			"recommendations": ["Initiate enhanced due diligence review"],
			"complianceRate": 100.0
		},
		"archived": true,
		"runId": 7
	}`)

	out, err := formatReport(raw)
	if err != nil {
		t.Fatalf("formatReport: %v", err)
	}
	for _, want := range []string{
		"AML audit report (2026-Q1)",
		"Archived as run 7",
		"Compliance rate: 100.0%",
		"- Initiate enhanced due diligence review",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatReportUnarchived(t *testing.T) {
	raw := json.RawMessage(`{
		"report": {
			"reportType": "aml", "period": "full history", "generatedAt": "2026-04-01T00:00:00Z",
			"status": {"policyType": "aml", "severityCounts": {}, "overall": "COMPLIANT"},
			"violations": [], "recommendations": [], "complianceRate": 100.0
		},
		"archived": false,
		"warning": "audit trail write failed"
	}`)

	out, err := formatReport(raw)
	if err != nil {
		t.Fatalf("formatReport: %v", err)
	}
	if !strings.Contains(out, "Not archived: audit trail write failed") {
		t.Errorf("output missing warning:\n%s", out)
	}
}

func TestFormatAuditTrail(t *testing.T) {
	raw := json.RawMessage(`{
		"count": 1,
		"entries": [
			{"runId": 3, "timestamp": "2026-04-01T00:00:00Z", "reportType": "aml",
			 "policyType": "aml", "scope": "2026-Q1", "transactionCount": 10,
			 "violationCount": 2, "overallStatus": "NON_COMPLIANT"}
		]
	}`)

	out, err := formatAuditTrail(raw)
	if err != nil {
		t.Fatalf("formatAuditTrail: %v", err)
	}
	if !strings.Contains(out, "run 3 | 2026-04-01T00:00:00Z | aml report on aml policies | 10 txns, 2 violations | NON_COMPLIANT | scope: 2026-Q1") {
		t.Errorf("unexpected trail line:\n%s", out)
	}

	out, err = formatAuditTrail(json.RawMessage(`{"count": 0, "entries": []}`))
	if err != nil {
		t.Fatalf("formatAuditTrail empty: %v", err)
	}
	if out != "No audit trail entries found." {
		t.Errorf("out = %q", out)
	}
}
