// Package validation provides input validation helpers for API boundaries.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxQueryLimit caps list query page sizes across the API.
const MaxQueryLimit = 1000

// CurrencyCode checks that s is a plausible ISO 4217 code (3 uppercase letters).
func CurrencyCode(s string) error {
	if len(s) != 3 {
		return fmt.Errorf("currency code must be 3 letters, got %q", s)
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("currency code must be uppercase letters, got %q", s)
		}
	}
	return nil
}

// Timestamp parses an RFC 3339 timestamp, returning a descriptive error.
func Timestamp(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be RFC 3339 (e.g. 2026-01-15T00:00:00Z), got %q", field, s)
	}
	return t, nil
}

// Limit validates a query limit, applying the default when unset.
func Limit(limit, def int) (int, error) {
	if limit == 0 {
		return def, nil
	}
	if limit < 0 {
		return 0, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if limit > MaxQueryLimit {
		return 0, fmt.Errorf("limit must not exceed %d, got %d", MaxQueryLimit, limit)
	}
	return limit, nil
}

// Amount parses a decimal amount string and rejects negative values.
func Amount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s must be a decimal number, got %q", field, s)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s must not be negative, got %s", field, d)
	}
	return d, nil
}

// NonEmpty checks that a required string field is present.
func NonEmpty(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}
