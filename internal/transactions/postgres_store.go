package transactions

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PostgresStore is the production transaction source backed by PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a transaction store backed by the given database.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const txnColumns = `id, supplier_name, supplier_country, amount, currency,
	transaction_date, payment_method, risk_category, COALESCE(description, ''), created_at`

// List returns transactions matching the filter, newest first.
func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Transaction, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + txnColumns + " FROM transactions")

	var args []any
	var conds []string
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.SupplierName != "" {
		add("supplier_name = $%d", f.SupplierName)
	}
	if f.Country != "" {
		add("supplier_country = $%d", f.Country)
	}
	if f.RiskCategory != "" {
		add("risk_category = $%d", f.RiskCategory)
	}
	if f.MinAmount != nil {
		add("amount >= $%d", f.MinAmount.String())
	}
	if f.MaxAmount != nil {
		add("amount <= $%d", f.MaxAmount.String())
	}
	if !f.StartDate.IsZero() {
		add("transaction_date >= $%d", f.StartDate)
	}
	if !f.EndDate.IsZero() {
		add("transaction_date <= $%d", f.EndDate)
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	args = append(args, limit)
	sb.WriteString(fmt.Sprintf(" ORDER BY transaction_date DESC, id DESC LIMIT $%d", len(args)))

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

// Get returns a transaction by ID.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+txnColumns+" FROM transactions WHERE id = $1", id)

	txn, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &txn, nil
}

// Count returns the total number of stored transactions.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (Transaction, error) {
	var txn Transaction
	err := row.Scan(
		&txn.ID,
		&txn.SupplierName,
		&txn.SupplierCountry,
		&txn.Amount,
		&txn.Currency,
		&txn.Date,
		&txn.PaymentMethod,
		&txn.RiskCategory,
		&txn.Description,
		&txn.CreatedAt,
	)
	return txn, err
}
