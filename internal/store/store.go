package store

import (
	"sync"

	"github.com/tailspect/tailspect/internal/record"
)

// Store is the append-only sequence of records shared by the ingestion
// pipelines and the UI. Indices are assigned on append, increase
// monotonically, and stay stable until Clear.
type Store struct {
	mu      sync.RWMutex
	records []*record.Record
}

// Append assigns the record its index and adds it to the store. Returns the
// assigned index. Safe to call from multiple producer goroutines; appends are
// serialized.
func (s *Store) Append(r *record.Record) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.Index = len(s.records)
	s.records = append(s.records, r)
	return r.Index
}

// Get returns the record at index, or nil when out of range.
func (s *Store) Get(index int) *record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.records) {
		return nil
	}
	return s.records[index]
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear drops all records and restarts indexing at zero. Any filtered view
// built over the store is invalid afterwards and must be rebuilt.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// UpdateField sets key to value on the record at index. An empty remove flag
// updates or adds the field; remove deletes it. Out-of-range indices are
// ignored.
func (s *Store) UpdateField(index int, key, value string, remove bool) {
	r := s.Get(index)
	if r == nil {
		return
	}
	if remove {
		r.Unset(key)
		return
	}
	r.Set(key, value)
}

// ToggleMark toggles the color mark on the record at index. Marking with the
// color already present clears it; any other color replaces it. Returns the
// mark now on the record.
func (s *Store) ToggleMark(index int, color string) string {
	r := s.Get(index)
	if r == nil {
		return ""
	}
	if r.Mark == color {
		r.Mark = ""
	} else {
		r.Mark = color
	}
	return r.Mark
}
