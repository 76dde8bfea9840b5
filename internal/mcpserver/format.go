package mcpserver

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Formatting helpers that turn API JSON into readable tool output.

type txnView struct {
	ID              string `json:"transactionId"`
	SupplierName    string `json:"supplierName"`
	SupplierCountry string `json:"supplierCountry"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	Date            string `json:"transactionDate"`
	PaymentMethod   string `json:"paymentMethod"`
	RiskCategory    string `json:"riskCategory"`
}

func formatTransactionList(raw json.RawMessage) (string, error) {
	var resp struct {
		Transactions []txnView `json:"transactions"`
		Count        int       `json:"count"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}
	if resp.Count == 0 {
		return "No transactions found.", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d transactions:\n\n", resp.Count)
	for _, t := range resp.Transactions {
		fmt.Fprintf(&sb, "%s | %s %s | %s (%s) | %s | risk %s\n",
			t.ID, t.Amount, t.Currency, t.SupplierName, t.SupplierCountry,
			t.PaymentMethod, t.RiskCategory)
	}
	return sb.String(), nil
}

type statusView struct {
	PolicyType        string `json:"policyType"`
	TotalTransactions int    `json:"totalTransactions"`
	TotalViolations   int    `json:"totalViolations"`
	SeverityCounts    struct {
		Low      int `json:"low"`
		Medium   int `json:"medium"`
		High     int `json:"high"`
		Critical int `json:"critical"`
	} `json:"severityCounts"`
	Overall         string `json:"overall"`
	HighestSeverity string `json:"highestSeverity"`
}

type violationView struct {
	TransactionID string `json:"transactionId"`
	RuleID        string `json:"ruleId"`
	RuleName      string `json:"ruleName"`
	Severity      string `json:"severity"`
	Description   string `json:"description"`
	Remediation   string `json:"remediation"`
	Amount        string `json:"amount"`
	SupplierName  string `json:"supplierName"`
	Country       string `json:"country"`
}

func writeStatus(sb *strings.Builder, s statusView) {
	fmt.Fprintf(sb, "Overall: %s\n", s.Overall)
	fmt.Fprintf(sb, "Policy family: %s\n", s.PolicyType)
	fmt.Fprintf(sb, "Transactions evaluated: %d\n", s.TotalTransactions)
	fmt.Fprintf(sb, "Violations: %d (critical %d, high %d, medium %d, low %d)\n",
		s.TotalViolations, s.SeverityCounts.Critical, s.SeverityCounts.High,
		s.SeverityCounts.Medium, s.SeverityCounts.Low)
	if s.HighestSeverity != "" {
		fmt.Fprintf(sb, "Highest severity: %s\n", s.HighestSeverity)
	}
}

func writeViolations(sb *strings.Builder, violations []violationView) {
	if len(violations) == 0 {
		return
	}
	sb.WriteString("\nViolations:\n")
	for _, v := range violations {
		fmt.Fprintf(sb, "- [%s] %s (%s): %s — txn %s, %s (%s), %s EUR\n",
			strings.ToUpper(v.Severity), v.RuleName, v.RuleID, v.Description,
			v.TransactionID, v.SupplierName, v.Country, v.Amount)
	}
}

func formatValidationResult(raw json.RawMessage) (string, error) {
	var resp struct {
		Status     statusView      `json:"status"`
		Violations []violationView `json:"violations"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}

	var sb strings.Builder
	writeStatus(&sb, resp.Status)
	writeViolations(&sb, resp.Violations)
	return sb.String(), nil
}

func formatStatus(raw json.RawMessage) (string, error) {
	var resp struct {
		Status            statusView      `json:"status"`
		Violations        []violationView `json:"violations"`
		SeverityThreshold string          `json:"severity_threshold"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}

	var sb strings.Builder
	writeStatus(&sb, resp.Status)
	if resp.SeverityThreshold != "" {
		fmt.Fprintf(&sb, "Listing violations at severity %s or above.\n", resp.SeverityThreshold)
	}
	writeViolations(&sb, resp.Violations)
	return sb.String(), nil
}

func formatReport(raw json.RawMessage) (string, error) {
	var resp struct {
		Report struct {
			ReportType      string          `json:"reportType"`
			Period          string          `json:"period"`
			GeneratedAt     string          `json:"generatedAt"`
			Status          statusView      `json:"status"`
			Violations      []violationView `json:"violations"`
			Recommendations []string        `json:"recommendations"`
			ComplianceRate  float64         `json:"complianceRate"`
		} `json:"report"`
		Archived bool   `json:"archived"`
		RunID    int64  `json:"runId"`
		Warning  string `json:"warning"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s audit report (%s)\n", strings.ToUpper(resp.Report.ReportType), resp.Report.Period)
	fmt.Fprintf(&sb, "Generated: %s\n", resp.Report.GeneratedAt)
	if resp.Archived {
		fmt.Fprintf(&sb, "Archived as run %d\n", resp.RunID)
	} else {
		sb.WriteString("Not archived")
		if resp.Warning != "" {
			fmt.Fprintf(&sb, ": %s", resp.Warning)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	writeStatus(&sb, resp.Report.Status)
	fmt.Fprintf(&sb, "Compliance rate: %.1f%%\n", resp.Report.ComplianceRate)

	if len(resp.Report.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, r := range resp.Report.Recommendations {
			fmt.Fprintf(&sb, "- %s\n", r)
		}
	}
	writeViolations(&sb, resp.Report.Violations)
	return sb.String(), nil
}

func formatAuditTrail(raw json.RawMessage) (string, error) {
	var resp struct {
		Entries []struct {
			ID               int64  `json:"runId"`
			Timestamp        string `json:"timestamp"`
			ReportType       string `json:"reportType"`
			PolicyType       string `json:"policyType"`
			Scope            string `json:"scope"`
			TransactionCount int    `json:"transactionCount"`
			ViolationCount   int    `json:"violationCount"`
			OverallStatus    string `json:"overallStatus"`
		} `json:"entries"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}
	if resp.Count == 0 {
		return "No audit trail entries found.", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d audit trail entries (newest first):\n\n", resp.Count)
	for _, e := range resp.Entries {
		fmt.Fprintf(&sb, "run %d | %s | %s report on %s policies | %d txns, %d violations | %s",
			e.ID, e.Timestamp, e.ReportType, e.PolicyType,
			e.TransactionCount, e.ViolationCount, e.OverallStatus)
		if e.Scope != "" {
			fmt.Fprintf(&sb, " | scope: %s", e.Scope)
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
