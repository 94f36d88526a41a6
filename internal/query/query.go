package query

import (
	"fmt"

	"github.com/tailspect/tailspect/internal/recache"
	"github.com/tailspect/tailspect/internal/record"
)

// Filter is a compiled expression. The AST is built once by Compile and never
// mutated; Matches may be called concurrently.
type Filter struct {
	source string
	root   *Node
}

// Compile parses and compiles expression text. Regex literals are compiled
// through cache; any syntax error or invalid regex fails compilation, and the
// caller's previously active filter stays untouched. The empty expression
// compiles to a filter matching every record.
func Compile(text string, cache *recache.Cache) (*Filter, error) {
	root, err := parse(text, cache)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", text, err)
	}
	return &Filter{source: text, root: root}, nil
}

// Matches reports whether rec satisfies the filter.
func (f *Filter) Matches(rec *record.Record) bool {
	return eval(f.root, rec)
}

// Source returns the expression text the filter was compiled from.
func (f *Filter) Source() string { return f.source }

// MatchesAll reports whether the filter is the trivial match-everything
// expression.
func (f *Filter) MatchesAll() bool { return f.root.Kind == NodeAll }
