package compliance

import (
	"time"

	"github.com/complyd/complyd/internal/policy"
	"github.com/complyd/complyd/internal/transactions"
)

// Recommendation texts. Derivation is rule-based and deterministic so
// synthesizing the same inputs twice yields identical reports.
const (
	RecommendEDD      = "Enhanced due diligence required"
	RecommendPEPDocs  = "Additional documentation required for PEP relationships"
	RecommendEscalate = "Escalate to compliance officer"
)

// DefaultEscalationThreshold is the violation count above which a run
// is recommended for escalation.
const DefaultEscalationThreshold = 10

// Synthesizer builds audit reports from validator output. It performs
// no I/O and never mutates the violation list.
type Synthesizer struct {
	escalationThreshold int
}

// NewSynthesizer creates a synthesizer. threshold <= 0 falls back to
// DefaultEscalationThreshold.
func NewSynthesizer(threshold int) *Synthesizer {
	if threshold <= 0 {
		threshold = DefaultEscalationThreshold
	}
	return &Synthesizer{escalationThreshold: threshold}
}

// Synthesize builds the report for one completed validation run. An
// empty violation list still produces a well-formed report: COMPLIANT
// status and an empty (non-nil) recommendation list.
func (s *Synthesizer) Synthesize(violations []policy.Violation, status Status, reportType ReportType, period string) AuditReport {
	report := AuditReport{
		ReportType:      reportType,
		Period:          period,
		GeneratedAt:     time.Now().UTC(),
		Status:          status,
		Violations:      violations,
		Recommendations: s.recommend(violations),
		ComplianceRate:  complianceRate(violations, status.TotalTransactions),
	}
	if report.Violations == nil {
		report.Violations = []policy.Violation{}
	}
	return report
}

// recommend derives recommendations from the violation mix. Each
// recommendation appears once, in the order its trigger first fires.
func (s *Synthesizer) recommend(violations []policy.Violation) []string {
	recs := []string{}
	seen := make(map[string]bool)
	add := func(r string) {
		if !seen[r] {
			seen[r] = true
			recs = append(recs, r)
		}
	}

	for _, v := range violations {
		if v.Severity == policy.SeverityCritical {
			add(RecommendEDD)
		}
		if v.RiskCategory == transactions.RiskPEP {
			add(RecommendPEPDocs)
		}
	}
	if len(violations) > s.escalationThreshold {
		add(RecommendEscalate)
	}
	return recs
}

// complianceRate is the percentage of transactions with no violation.
func complianceRate(violations []policy.Violation, total int) float64 {
	if total == 0 {
		return 100.0
	}
	flagged := make(map[string]bool, len(violations))
	for _, v := range violations {
		flagged[v.TransactionID] = true
	}
	clean := total - len(flagged)
	if clean < 0 {
		clean = 0
	}
	return float64(clean) / float64(total) * 100.0
}

// FilterBySeverity returns the violations at or above the given
// severity floor, preserving order. Used by the compliance status
// endpoint's severity_threshold parameter.
func FilterBySeverity(violations []policy.Violation, floor policy.Severity) []policy.Violation {
	out := []policy.Violation{}
	for _, v := range violations {
		if v.Severity >= floor {
			out = append(out, v)
		}
	}
	return out
}
