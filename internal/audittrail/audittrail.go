// Package audittrail persists the append-only history of compliance
// validation runs. Entries are created once per run and never mutated
// or deleted.
package audittrail

import (
	"context"
	"errors"
	"time"
)

// Entry is one recorded validation run. The store assigns the run ID
// (monotonically increasing) and timestamp at record time.
type Entry struct {
	ID               int64     `json:"runId"`
	Timestamp        time.Time `json:"timestamp"`
	ReportType       string    `json:"reportType"`
	PolicyType       string    `json:"policyType"`
	Scope            string    `json:"scope"` // description of the input filter
	TransactionCount int       `json:"transactionCount"`
	ViolationCount   int       `json:"violationCount"`
	OverallStatus    string    `json:"overallStatus"`
	Report           []byte    `json:"-"` // serialized AuditReport snapshot
}

// Query narrows an audit trail lookup. Zero times mean unbounded;
// empty ReportType matches all types.
type Query struct {
	From       time.Time
	To         time.Time
	ReportType string
	Limit      int
}

// DefaultQueryLimit caps unbounded trail queries.
const DefaultQueryLimit = 50

// Store is the append-only audit trail. Record must be atomic under
// concurrent callers: entries never interleave partially. Query returns
// matches in reverse-chronological order, and an empty (non-error)
// result when nothing matches.
type Store interface {
	Record(ctx context.Context, e *Entry) (*Entry, error)
	Query(ctx context.Context, q Query) ([]*Entry, error)
	Get(ctx context.Context, id int64) (*Entry, error)
}

// ErrNotFound is returned by Get when no entry has the given run ID.
var ErrNotFound = errors.New("audit trail entry not found")

// StoreError reports an underlying persistence failure on trail write.
// It is propagated to the caller, never retried silently.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "audit trail " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }
