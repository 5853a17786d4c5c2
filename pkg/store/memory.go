package store

import (
	"context"
	"sync"

	"github.com/soteria-labs/soteria/pkg/engine"
)

// MemoryStore keeps the most recent records in a fixed-size ring. Aggregates
// cover everything ever saved, not just what the ring still holds, so stats
// stay accurate after old records rotate out.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	next    int
	full    bool

	total      int
	toxic      int
	byCategory map[engine.Category]int
	bySeverity map[engine.Severity]int
}

// NewMemoryStore creates a ring holding up to capacity records.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemoryStore{
		records:    make([]Record, capacity),
		byCategory: make(map[engine.Category]int),
		bySeverity: make(map[engine.Severity]int),
	}
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[s.next] = rec
	s.next++
	if s.next == len(s.records) {
		s.next = 0
		s.full = true
	}
	s.total++
	if rec.IsToxic {
		s.toxic++
	}
	s.byCategory[rec.Category]++
	s.bySeverity[rec.Severity]++
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.next
	if s.full {
		size = len(s.records)
	}
	if limit <= 0 || limit > size {
		limit = size
	}
	out := make([]Record, 0, limit)
	// Walk backwards from the most recent write
	idx := s.next - 1
	for i := 0; i < limit; i++ {
		if idx < 0 {
			idx = len(s.records) - 1
		}
		out = append(out, s.records[idx])
		idx--
	}
	return out, nil
}

func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		TotalAnalyzed: s.total,
		ToxicCount:    s.toxic,
		ByCategory:    make(map[engine.Category]int, len(s.byCategory)),
		BySeverity:    make(map[engine.Severity]int, len(s.bySeverity)),
	}
	if s.total > 0 {
		st.ToxicRate = float64(s.toxic) / float64(s.total)
	}
	for k, v := range s.byCategory {
		st.ByCategory[k] = v
	}
	for k, v := range s.bySeverity {
		st.BySeverity[k] = v
	}
	return st, nil
}

func (s *MemoryStore) Close() error { return nil }
