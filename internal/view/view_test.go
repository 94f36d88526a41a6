package view

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/tailspect/tailspect/internal/query"
	"github.com/tailspect/tailspect/internal/recache"
	"github.com/tailspect/tailspect/internal/record"
	"github.com/tailspect/tailspect/internal/store"
)

func newLeveledStore(levels ...string) *store.Store {
	s := &store.Store{}
	for i, level := range levels {
		r := record.New(fmt.Sprintf("%s message %d", level, i))
		r.Set("level", level)
		s.Append(r)
	}
	return s
}

func mustCompile(t *testing.T, expr string) *query.Filter {
	t.Helper()
	f, err := query.Compile(expr, recache.New(0))
	if err != nil {
		t.Fatalf("Compile(%q) error = %v", expr, err)
	}
	return f
}

func TestIdentityViewWithoutFilter(t *testing.T) {
	s := newLeveledStore("INFO", "ERROR", "INFO")
	e := NewEngine(s)
	if got, want := e.Indices(), []int{0, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Indices() = %v, want identity %v", got, want)
	}
	if e.Len() != 3 {
		t.Errorf("Len() = %d, want 3", e.Len())
	}
	if e.At(1) != 1 {
		t.Errorf("At(1) = %d, want 1", e.At(1))
	}
	if e.At(5) != -1 {
		t.Errorf("At(5) = %d, want -1", e.At(5))
	}
}

func TestApplyRebuildsView(t *testing.T) {
	s := newLeveledStore("INFO", "ERROR", "INFO", "ERROR", "ERROR")
	e := NewEngine(s)
	e.Apply(mustCompile(t, `level == "ERROR"`))

	if got, want := e.Indices(), []int{1, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Indices() = %v, want %v", got, want)
	}
	if e.At(0) != 1 {
		t.Errorf("At(0) = %d, want store index 1", e.At(0))
	}
}

func TestOnAppendExtendsViewIncrementally(t *testing.T) {
	s := newLeveledStore("ERROR")
	e := NewEngine(s)
	e.Apply(mustCompile(t, `level == "ERROR"`))
	if e.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", e.Len())
	}

	info := record.New("INFO quiet")
	info.Set("level", "INFO")
	e.OnAppend(info, s.Append(info))
	if e.Len() != 1 {
		t.Errorf("Len() = %d after non-matching append, want unchanged 1", e.Len())
	}

	errRec := record.New("ERROR loud")
	errRec.Set("level", "ERROR")
	idx := s.Append(errRec)
	e.OnAppend(errRec, idx)
	if got, want := e.Indices(), []int{0, idx}; !reflect.DeepEqual(got, want) {
		t.Errorf("Indices() = %v, want %v", got, want)
	}
}

func TestApplyCoversPendingOnAppend(t *testing.T) {
	// A producer can finish its store append and only then deliver
	// OnAppend; an Apply running in between already scanned that record.
	// The late notification must not add the index a second time.
	s := newLeveledStore("ERROR")
	e := NewEngine(s)

	late := record.New("ERROR late")
	late.Set("level", "ERROR")
	idx := s.Append(late)

	e.Apply(mustCompile(t, `level == "ERROR"`))
	e.OnAppend(late, idx)

	if got, want := e.Indices(), []int{0, idx}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Indices() = %v, want %v without duplicates", got, want)
	}

	// Records appended after the scan still extend the view.
	next := record.New("ERROR next")
	next.Set("level", "ERROR")
	nextIdx := s.Append(next)
	e.OnAppend(next, nextIdx)
	if got, want := e.Indices(), []int{0, idx, nextIdx}; !reflect.DeepEqual(got, want) {
		t.Errorf("Indices() = %v, want %v", got, want)
	}
}

func TestApplyMatchAllDeactivates(t *testing.T) {
	s := newLeveledStore("INFO", "ERROR")
	e := NewEngine(s)
	e.Apply(mustCompile(t, `level == "ERROR"`))
	e.Apply(mustCompile(t, ""))
	if e.Filter() != nil {
		t.Error("match-all filter left active")
	}
	if e.Len() != 2 {
		t.Errorf("Len() = %d after deactivation, want 2", e.Len())
	}
}

func TestSearchWrapsAround(t *testing.T) {
	// Matches at store indices 2, 5, 9.
	levels := []string{"INFO", "INFO", "ERROR", "INFO", "INFO", "ERROR", "INFO", "INFO", "INFO", "ERROR"}
	s := newLeveledStore(levels...)
	e := NewEngine(s)
	f := mustCompile(t, `level == "ERROR"`)

	if got, ok := e.SearchNext(f, 2); !ok || got != 5 {
		t.Errorf("SearchNext from 2 = %d, %v, want 5, true", got, ok)
	}
	if got, ok := e.SearchNext(f, 9); !ok || got != 2 {
		t.Errorf("SearchNext from 9 = %d, %v, want wrap to 2", got, ok)
	}
	if got, ok := e.SearchPrev(f, 2); !ok || got != 9 {
		t.Errorf("SearchPrev from 2 = %d, %v, want wrap to 9", got, ok)
	}
	if got, ok := e.SearchPrev(f, 9); !ok || got != 5 {
		t.Errorf("SearchPrev from 9 = %d, %v, want 5", got, ok)
	}
}

func TestSearchNoMatches(t *testing.T) {
	s := newLeveledStore("INFO", "INFO")
	e := NewEngine(s)
	f := mustCompile(t, `level == "FATAL"`)

	if got, ok := e.SearchNext(f, 1); ok || got != 1 {
		t.Errorf("SearchNext with no matches = %d, %v, want cursor 1, false", got, ok)
	}
	if got, ok := e.SearchPrev(f, 0); ok || got != 0 {
		t.Errorf("SearchPrev with no matches = %d, %v, want cursor 0, false", got, ok)
	}
}

func TestNextMark(t *testing.T) {
	s := newLeveledStore("INFO", "INFO", "INFO")
	e := NewEngine(s)

	if _, ok := e.NextMark(0); ok {
		t.Error("NextMark found a mark in an unmarked store")
	}
	s.ToggleMark(2, "red")
	if got, ok := e.NextMark(0); !ok || got != 2 {
		t.Errorf("NextMark(0) = %d, %v, want 2, true", got, ok)
	}
	if got, ok := e.NextMark(2); !ok || got != 2 {
		t.Errorf("NextMark(2) = %d, %v, want wrap to 2", got, ok)
	}
}

func TestResetAfterClear(t *testing.T) {
	s := newLeveledStore("ERROR")
	e := NewEngine(s)
	e.Apply(mustCompile(t, `level == "ERROR"`))
	s.Clear()
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len() = %d after clear, want 0", e.Len())
	}
	if e.Filter() != nil {
		t.Error("filter survived Reset")
	}
}
