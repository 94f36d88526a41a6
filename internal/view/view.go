package view

import (
	"sync"

	"github.com/tailspect/tailspect/internal/query"
	"github.com/tailspect/tailspect/internal/record"
	"github.com/tailspect/tailspect/internal/store"
)

// Engine maintains the filtered view: the ordered store indices whose records
// satisfy the active filter. With no filter active the view is the identity
// sequence over the store.
//
// Activating a filter is a full pass over the store; that only happens on
// filter change. Each appended record is evaluated once and, on a match, its
// index is appended to the view, so streaming never rescans.
type Engine struct {
	mu      sync.Mutex
	store   *store.Store
	filter  *query.Filter
	matches []int
	// seen is the store length already evaluated. A producer that appended
	// to the store before an Apply scan but delivers its OnAppend after is
	// below this mark, so the scan's result stands and the index is not
	// double-counted.
	seen int
}

// NewEngine returns an engine over s with no active filter.
func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Apply activates f, rebuilding the view from every record currently in the
// store. A nil filter (or one matching everything) deactivates filtering.
func (e *Engine) Apply(f *query.Filter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if f != nil && f.MatchesAll() {
		f = nil
	}
	e.filter = f
	e.matches = nil
	n := e.store.Len()
	e.seen = n
	if f == nil {
		return
	}
	for i := 0; i < n; i++ {
		if f.Matches(e.store.Get(i)) {
			e.matches = append(e.matches, i)
		}
	}
}

// Filter returns the active filter, nil when none.
func (e *Engine) Filter() *query.Filter {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filter
}

// OnAppend evaluates a newly appended record against the active filter and
// extends the view when it matches. Callers must invoke it in store append
// order. Indices an Apply scan has already covered are ignored.
func (e *Engine) OnAppend(rec *record.Record, index int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < e.seen {
		return
	}
	e.seen = index + 1
	if e.filter == nil || !e.filter.Matches(rec) {
		return
	}
	e.matches = append(e.matches, index)
}

// Reset drops the view and the active filter. Used after the store is
// cleared, which invalidates every held index.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter = nil
	e.matches = nil
	e.seen = 0
}

// Len returns the number of records in the view.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.filter == nil {
		return e.store.Len()
	}
	return len(e.matches)
}

// At maps a view position to its store index. Returns -1 when pos is out of
// range.
func (e *Engine) At(pos int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.filter == nil {
		if pos < 0 || pos >= e.store.Len() {
			return -1
		}
		return pos
	}
	if pos < 0 || pos >= len(e.matches) {
		return -1
	}
	return e.matches[pos]
}

// Indices returns a copy of the view as store indices.
func (e *Engine) Indices() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.filter == nil {
		ids := make([]int, e.store.Len())
		for i := range ids {
			ids[i] = i
		}
		return ids
	}
	ids := make([]int, len(e.matches))
	copy(ids, e.matches)
	return ids
}
