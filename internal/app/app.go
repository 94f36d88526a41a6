package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/tailspect/tailspect/internal/config"
	"github.com/tailspect/tailspect/internal/extract"
	"github.com/tailspect/tailspect/internal/query"
	"github.com/tailspect/tailspect/internal/recache"
	"github.com/tailspect/tailspect/internal/record"
	"github.com/tailspect/tailspect/internal/store"
	"github.com/tailspect/tailspect/internal/ui"
	"github.com/tailspect/tailspect/internal/view"
)

// Options configure the tailspect application.
type Options struct {
	RulesPath string
	// Paths are files to load and optionally tail.
	Paths []string
	// Exec spawns a command and inspects its output instead of files.
	Exec []string
	// Stdin is read when neither Paths nor Exec is given. Defaults to
	// os.Stdin.
	Stdin io.Reader
	// Follow keeps tailing file sources after the initial load.
	Follow   bool
	DebugLog string
}

// Run boots ingestion and the viewer until the context is cancelled or the
// user quits. Every rule used by a source is compiled before the first line
// is read, so configuration errors are fatal here and never surface mid-run.
func Run(ctx context.Context, opts Options) error {
	if err := routeLogs(opts.DebugLog); err != nil {
		return err
	}

	cfg, err := config.Load(opts.RulesPath)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	cache := recache.New(0)
	st := &store.Store{}
	engine := view.NewEngine(st)
	sink := &appender{store: st, engine: engine}

	sources, title, rule, err := buildSources(cfg, opts, cache, sink)
	if err != nil {
		return err
	}
	named, err := namedFilters(rule, cache)
	if err != nil {
		return err
	}

	for _, src := range sources {
		go func(src source) {
			if err := src.run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("source %s: %v", src.name, err)
			}
		}(src)
	}

	return ui.Run(ctx, ui.Options{
		Store:   st,
		Engine:  engine,
		Cache:   cache,
		Filters: named,
		Title:   title,
	})
}

// appender funnels every producer into the store through one lock, so appends
// stay atomic and the filtered view is extended in store order.
type appender struct {
	mu     sync.Mutex
	store  *store.Store
	engine *view.Engine
}

func (a *appender) Append(rec *record.Record) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	idx := a.store.Append(rec)
	a.engine.OnAppend(rec, idx)
	return idx
}

// chainFor compiles a rule's extractor list. Each source gets its own chain:
// the csv extractor keeps per-source header state.
func chainFor(rule config.Rule, cache *recache.Cache) (*extract.Chain, error) {
	policy := extract.FirstWins
	if rule.Merge == "last" {
		policy = extract.LastWins
	}
	chain, err := extract.NewChain(rule.Extractors, cache, policy)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
	}
	return chain, nil
}

// namedFilters compiles a rule's canned filter expressions.
func namedFilters(rule config.Rule, cache *recache.Cache) ([]ui.NamedFilter, error) {
	var out []ui.NamedFilter
	for _, f := range rule.Filters {
		compiled, err := query.Compile(f.Expression, cache)
		if err != nil {
			return nil, fmt.Errorf("rule %q filter %q: %w", rule.Name, f.Name, err)
		}
		out = append(out, ui.NamedFilter{Name: f.Name, Filter: compiled})
	}
	return out, nil
}

// routeLogs sends background pipeline diagnostics to a debug file, or
// discards them so they never scribble over the viewer.
func routeLogs(path string) error {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	log.SetOutput(file)
	return nil
}

func joinTitle(parts []string) string {
	return strings.Join(parts, " ")
}
