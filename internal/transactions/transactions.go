// Package transactions provides read access to the financial transaction
// records that compliance runs evaluate. The compliance core never writes
// to this store.
package transactions

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a transaction lookup matches nothing.
var ErrNotFound = errors.New("transaction not found")

// Payment methods as recorded by the upstream accounting system.
const (
	MethodWire  = "WIRE"
	MethodCheck = "CHECK"
	MethodCash  = "CASH"
)

// Risk categories assigned by supplier onboarding.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
	RiskPEP    = "PEP" // politically exposed person
)

// Transaction is an immutable fact record owned by the upstream store.
// Amounts are normalized to the reference currency (EUR) before any
// policy evaluation.
type Transaction struct {
	ID              string          `json:"transactionId"`
	SupplierName    string          `json:"supplierName"`
	SupplierCountry string          `json:"supplierCountry"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Date            time.Time       `json:"transactionDate"`
	PaymentMethod   string          `json:"paymentMethod"`
	RiskCategory    string          `json:"riskCategory"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Filter narrows a transaction query. Zero values mean "no constraint".
type Filter struct {
	SupplierName string
	Country      string
	RiskCategory string
	MinAmount    *decimal.Decimal
	MaxAmount    *decimal.Decimal
	StartDate    time.Time
	EndDate      time.Time
	Limit        int
}

// DefaultQueryLimit caps unbounded queries.
const DefaultQueryLimit = 100

// Store is the read-only transaction source.
type Store interface {
	List(ctx context.Context, f Filter) ([]Transaction, error)
	Get(ctx context.Context, id string) (*Transaction, error)
	Count(ctx context.Context) (int, error)
}
