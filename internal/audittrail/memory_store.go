package audittrail

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory audit trail for demo/testing. Writes are
// serialized by the mutex, so entries are always recorded whole.
type MemoryStore struct {
	entries []*Entry
	nextID  int64
	mu      sync.RWMutex
}

// NewMemoryStore creates an in-memory audit trail.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record appends an entry, assigning the next run ID and the current
// timestamp.
func (m *MemoryStore) Record(_ context.Context, e *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	cp := *e
	cp.ID = m.nextID
	cp.Timestamp = time.Now().UTC()
	m.entries = append(m.entries, &cp)

	out := cp
	return &out, nil
}

// Query returns matching entries newest-first.
func (m *MemoryStore) Query(_ context.Context, q Query) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	result := []*Entry{}
	for i := len(m.entries) - 1; i >= 0 && len(result) < limit; i-- {
		e := m.entries[i]
		if !q.From.IsZero() && e.Timestamp.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && e.Timestamp.After(q.To) {
			continue
		}
		if q.ReportType != "" && e.ReportType != q.ReportType {
			continue
		}
		cp := *e
		result = append(result, &cp)
	}
	return result, nil
}

// Get returns one entry by run ID.
func (m *MemoryStore) Get(_ context.Context, id int64) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Len returns the number of recorded entries (for testing).
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
