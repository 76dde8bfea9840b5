// Package compliance orchestrates policy evaluation over transaction
// batches: it pulls rules from the catalog, evaluates each (rule,
// transaction) pair, aggregates the result into a compliance status,
// and synthesizes audit reports.
package compliance

import (
	"time"

	"github.com/complyd/complyd/internal/policy"
)

// Overall is the aggregate compliance verdict for a run.
type Overall string

const (
	Compliant    Overall = "COMPLIANT"
	NonCompliant Overall = "NON_COMPLIANT"
)

// ValidationError reports invalid run input. Runs that fail validation
// are reported to the caller and never recorded in the audit trail.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "compliance validation: " + e.Reason
}

// The two validation failure modes.
var (
	ErrEmptyTransactions = &ValidationError{Reason: "empty transaction set"}
	ErrUnknownPolicy     = &ValidationError{Reason: "unknown policy type"}
)

// SeverityCounts tallies violations per severity level.
type SeverityCounts struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// Add increments the tally for one severity.
func (sc *SeverityCounts) Add(s policy.Severity) {
	switch s {
	case policy.SeverityLow:
		sc.Low++
	case policy.SeverityMedium:
		sc.Medium++
	case policy.SeverityHigh:
		sc.High++
	case policy.SeverityCritical:
		sc.Critical++
	}
}

// Highest returns the maximum severity with a non-zero count. The
// second return is false when all counts are zero.
func (sc SeverityCounts) Highest() (policy.Severity, bool) {
	switch {
	case sc.Critical > 0:
		return policy.SeverityCritical, true
	case sc.High > 0:
		return policy.SeverityHigh, true
	case sc.Medium > 0:
		return policy.SeverityMedium, true
	case sc.Low > 0:
		return policy.SeverityLow, true
	}
	return 0, false
}

// Total returns the sum across all severities.
func (sc SeverityCounts) Total() int {
	return sc.Low + sc.Medium + sc.High + sc.Critical
}

// Status is the aggregate result of one validation run.
type Status struct {
	PolicyType        policy.Type      `json:"policyType"`
	TotalTransactions int              `json:"totalTransactions"`
	TotalViolations   int              `json:"totalViolations"`
	SeverityCounts    SeverityCounts   `json:"severityCounts"`
	Overall           Overall          `json:"overall"`
	HighestSeverity   *policy.Severity `json:"highestSeverity,omitempty"`
}

// ReportType identifies the kind of audit report requested.
type ReportType string

const (
	ReportAML        ReportType = "aml"
	ReportCompliance ReportType = "compliance"
	ReportFinancial  ReportType = "financial"
	ReportRisk       ReportType = "risk"
)

// ParseReportType validates a report type string.
func ParseReportType(s string) (ReportType, bool) {
	switch ReportType(s) {
	case ReportAML, ReportCompliance, ReportFinancial, ReportRisk:
		return ReportType(s), true
	}
	return "", false
}

// AuditReport is a point-in-time snapshot of a validation run. It is
// owned by the run that produced it and handed to the audit trail for
// retention.
type AuditReport struct {
	ReportType      ReportType         `json:"reportType"`
	Period          string             `json:"period"`
	GeneratedAt     time.Time          `json:"generatedAt"`
	Status          Status             `json:"status"`
	Violations      []policy.Violation `json:"violations"`
	Recommendations []string           `json:"recommendations"`
	ComplianceRate  float64            `json:"complianceRate"` // percent of transactions with no violation
}
