package audittrail

import (
	"context"
	"database/sql"
	"fmt"
)

// Compile-time check that PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)

// PostgresStore implements Store backed by PostgreSQL. The run ID is
// the BIGSERIAL primary key, so it is monotonically increasing and
// each insert is atomic.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed audit trail.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Record(ctx context.Context, e *Entry) (*Entry, error) {
	cp := *e
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO audit_trail (report_type, policy_type, scope, transaction_count, violation_count, overall_status, report, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::JSONB, NOW())
		RETURNING id, created_at
	`, e.ReportType, e.PolicyType, e.Scope, e.TransactionCount, e.ViolationCount, e.OverallStatus, string(e.Report)).
		Scan(&cp.ID, &cp.Timestamp)
	if err != nil {
		return nil, &StoreError{Op: "record", Err: err}
	}
	return &cp, nil
}

func (p *PostgresStore) Query(ctx context.Context, q Query) ([]*Entry, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	query := `SELECT id, report_type, policy_type, scope, transaction_count, violation_count, overall_status, report::TEXT, created_at
		FROM audit_trail WHERE 1=1`
	var args []interface{}

	if !q.From.IsZero() {
		args = append(args, q.From)
		query += argPlaceholder(" AND created_at >= ", len(args))
	}
	if !q.To.IsZero() {
		args = append(args, q.To)
		query += argPlaceholder(" AND created_at <= ", len(args))
	}
	if q.ReportType != "" {
		args = append(args, q.ReportType)
		query += argPlaceholder(" AND report_type = ", len(args))
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC, id DESC" + argPlaceholder(" LIMIT ", len(args))

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	defer func() { _ = rows.Close() }()

	entries := []*Entry{}
	for rows.Next() {
		e := &Entry{}
		var report string
		if err := rows.Scan(&e.ID, &e.ReportType, &e.PolicyType, &e.Scope,
			&e.TransactionCount, &e.ViolationCount, &e.OverallStatus, &report, &e.Timestamp); err != nil {
			return nil, &StoreError{Op: "scan", Err: err}
		}
		e.Report = []byte(report)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	return entries, nil
}

func argPlaceholder(prefix string, n int) string {
	return fmt.Sprintf("%s$%d", prefix, n)
}

func (p *PostgresStore) Get(ctx context.Context, id int64) (*Entry, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, report_type, policy_type, scope, transaction_count, violation_count, overall_status, report::TEXT, created_at
		FROM audit_trail WHERE id = $1
	`, id)

	e := &Entry{}
	var report string
	err := row.Scan(&e.ID, &e.ReportType, &e.PolicyType, &e.Scope,
		&e.TransactionCount, &e.ViolationCount, &e.OverallStatus, &report, &e.Timestamp)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Err: err}
	}
	e.Report = []byte(report)
	return e, nil
}
