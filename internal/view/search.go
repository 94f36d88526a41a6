package view

import "github.com/tailspect/tailspect/internal/query"

// SearchNext returns the store index of the first record after cursor that
// matches f, wrapping past the end. Returns cursor and false when nothing
// matches, so the caller's cursor stays put.
func (e *Engine) SearchNext(f *query.Filter, cursor int) (int, bool) {
	n := e.store.Len()
	if f == nil || n == 0 {
		return cursor, false
	}
	for step := 1; step <= n; step++ {
		i := (cursor + step) % n
		if i < 0 {
			i += n
		}
		if f.Matches(e.store.Get(i)) {
			return i, true
		}
	}
	return cursor, false
}

// SearchPrev is SearchNext in the other direction, wrapping past the start.
func (e *Engine) SearchPrev(f *query.Filter, cursor int) (int, bool) {
	n := e.store.Len()
	if f == nil || n == 0 {
		return cursor, false
	}
	for step := 1; step <= n; step++ {
		i := ((cursor-step)%n + n) % n
		if f.Matches(e.store.Get(i)) {
			return i, true
		}
	}
	return cursor, false
}

// NextMark returns the store index of the first marked record after cursor,
// wrapping. Returns cursor and false when no record is marked.
func (e *Engine) NextMark(cursor int) (int, bool) {
	n := e.store.Len()
	for step := 1; step <= n; step++ {
		i := (cursor + step) % n
		if i < 0 {
			i += n
		}
		if e.store.Get(i).Mark != "" {
			return i, true
		}
	}
	return cursor, false
}
