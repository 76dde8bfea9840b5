package compliance

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/complyd/complyd/internal/audittrail"
	"github.com/complyd/complyd/internal/logging"
	"github.com/complyd/complyd/internal/metrics"
	"github.com/complyd/complyd/internal/policy"
	"github.com/complyd/complyd/internal/traces"
	"github.com/complyd/complyd/internal/transactions"
)

// Service runs the full validation pipeline: catalog lookup,
// evaluation, aggregation, report synthesis, and audit trail write.
type Service struct {
	validator   *Validator
	synthesizer *Synthesizer
	trail       audittrail.Store
}

// NewService creates a compliance service.
func NewService(validator *Validator, synthesizer *Synthesizer, trail audittrail.Store) *Service {
	return &Service{
		validator:   validator,
		synthesizer: synthesizer,
		trail:       trail,
	}
}

// Validate runs evaluation and aggregation only, without synthesizing
// or recording a report.
func (s *Service) Validate(ctx context.Context, txns []transactions.Transaction, policyType policy.Type) ([]policy.Violation, Status, error) {
	return s.validator.Validate(ctx, txns, policyType)
}

// Run executes one complete validation run and archives the resulting
// report in the audit trail.
//
// Input validation failures are returned without recording anything.
// If the trail write fails, the computed report is still returned along
// with the *audittrail.StoreError so the caller does not lose the
// result of a completed evaluation.
func (s *Service) Run(ctx context.Context, txns []transactions.Transaction, policyType policy.Type, reportType ReportType, period, scope string) (*AuditReport, *audittrail.Entry, error) {
	ctx, span := traces.StartSpan(ctx, "compliance.run",
		traces.PolicyType(string(policyType)),
		traces.ReportType(string(reportType)),
		traces.TransactionCount(len(txns)),
	)
	defer span.End()

	violations, status, err := s.validator.Validate(ctx, txns, policyType)
	if err != nil {
		return nil, nil, err
	}
	span.SetAttributes(traces.ViolationCount(status.TotalViolations))

	report := s.synthesizer.Synthesize(violations, status, reportType, period)
	ReportsTotal.WithLabelValues(string(reportType)).Inc()

	snapshot, err := json.Marshal(report)
	if err != nil {
		// Reports are plain data; marshaling only fails on a bug.
		return &report, nil, fmt.Errorf("marshal report: %w", err)
	}

	entry, err := s.trail.Record(ctx, &audittrail.Entry{
		ReportType:       string(reportType),
		PolicyType:       string(policyType),
		Scope:            scope,
		TransactionCount: status.TotalTransactions,
		ViolationCount:   status.TotalViolations,
		OverallStatus:    string(status.Overall),
		Report:           snapshot,
	})
	if err != nil {
		metrics.AuditTrailWritesTotal.WithLabelValues("error").Inc()
		logging.L(ctx).Error("audit trail write failed; returning unarchived report",
			"policy_type", policyType,
			"report_type", reportType,
			"error", err,
		)
		return &report, nil, err
	}

	metrics.AuditTrailWritesTotal.WithLabelValues("ok").Inc()
	span.SetAttributes(traces.RunID(entry.ID))
	logging.L(ctx).Info("validation run recorded",
		"run_id", entry.ID,
		"policy_type", policyType,
		"transactions", status.TotalTransactions,
		"violations", status.TotalViolations,
		"overall", status.Overall,
	)
	return &report, entry, nil
}
