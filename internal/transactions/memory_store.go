package transactions

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	txns []Transaction
}

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Put inserts transactions. Existing records with the same ID are replaced.
func (s *MemoryStore) Put(txns ...Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, txn := range txns {
		replaced := false
		for i := range s.txns {
			if s.txns[i].ID == txn.ID {
				s.txns[i] = txn
				replaced = true
				break
			}
		}
		if !replaced {
			s.txns = append(s.txns, txn)
		}
	}

	// Keep newest-first so List honors its ordering contract.
	sort.SliceStable(s.txns, func(i, j int) bool {
		return s.txns[i].Date.After(s.txns[j].Date)
	})
}

// List returns transactions matching the filter, newest first.
func (s *MemoryStore) List(ctx context.Context, f Filter) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	out := make([]Transaction, 0, limit)
	for _, txn := range s.txns {
		if !matches(txn, f) {
			continue
		}
		out = append(out, txn)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Get returns a transaction by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.txns {
		if s.txns[i].ID == id {
			txn := s.txns[i]
			return &txn, nil
		}
	}
	return nil, ErrNotFound
}

// Count returns the total number of stored transactions.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txns), nil
}

func matches(txn Transaction, f Filter) bool {
	if f.SupplierName != "" && txn.SupplierName != f.SupplierName {
		return false
	}
	if f.Country != "" && txn.SupplierCountry != f.Country {
		return false
	}
	if f.RiskCategory != "" && txn.RiskCategory != f.RiskCategory {
		return false
	}
	if f.MinAmount != nil && txn.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && txn.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if !f.StartDate.IsZero() && txn.Date.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && txn.Date.After(f.EndDate) {
		return false
	}
	return true
}
