package compliance

import (
	"time"

	"github.com/complyd/complyd/internal/policy"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ValidationRunsTotal counts validation runs by policy type.
	ValidationRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "complyd",
			Name:      "validation_runs_total",
			Help:      "Total compliance validation runs by policy type.",
		},
		[]string{"policy_type"},
	)

	// ViolationsTotal counts detected violations by severity.
	ViolationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "complyd",
			Name:      "violations_total",
			Help:      "Total policy violations detected by severity.",
		},
		[]string{"severity"},
	)

	// TransactionsEvaluated counts transactions processed by runs.
	TransactionsEvaluated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "complyd",
			Name:      "transactions_evaluated_total",
			Help:      "Total transactions evaluated across all runs.",
		},
	)

	// ValidationDuration observes run latency by policy type.
	ValidationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "complyd",
			Name:      "validation_duration_seconds",
			Help:      "Validation run duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
		[]string{"policy_type"},
	)

	// ReportsTotal counts synthesized audit reports by type.
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "complyd",
			Name:      "audit_reports_total",
			Help:      "Total audit reports synthesized by report type.",
		},
		[]string{"report_type"},
	)
)

func init() {
	prometheus.MustRegister(
		ValidationRunsTotal,
		ViolationsTotal,
		TransactionsEvaluated,
		ValidationDuration,
		ReportsTotal,
	)
}

// observeValidation records the metrics for one completed run.
func observeValidation(policyType policy.Type, txns int, counts SeverityCounts, elapsed time.Duration) {
	ValidationRunsTotal.WithLabelValues(string(policyType)).Inc()
	TransactionsEvaluated.Add(float64(txns))
	ValidationDuration.WithLabelValues(string(policyType)).Observe(elapsed.Seconds())

	ViolationsTotal.WithLabelValues(policy.SeverityLow.String()).Add(float64(counts.Low))
	ViolationsTotal.WithLabelValues(policy.SeverityMedium.String()).Add(float64(counts.Medium))
	ViolationsTotal.WithLabelValues(policy.SeverityHigh.String()).Add(float64(counts.High))
	ViolationsTotal.WithLabelValues(policy.SeverityCritical.String()).Add(float64(counts.Critical))
}
