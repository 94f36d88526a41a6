package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tailspect/tailspect/internal/query"
	"github.com/tailspect/tailspect/internal/recache"
	"github.com/tailspect/tailspect/internal/store"
	"github.com/tailspect/tailspect/internal/view"
)

// NamedFilter is a rule-provided expression compiled at startup, activated
// with a single keystroke.
type NamedFilter struct {
	Name   string
	Filter *query.Filter
}

// Options configure the viewer runtime.
type Options struct {
	Store   *store.Store
	Engine  *view.Engine
	Cache   *recache.Cache
	Filters []NamedFilter
	// Title labels the header bar, usually the input path or command.
	Title string
}

// Run blocks until ctx is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil || opts.Engine == nil {
		return fmt.Errorf("ui requires a store and a view engine")
	}
	p := tea.NewProgram(newModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
