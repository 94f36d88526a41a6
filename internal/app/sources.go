package app

import (
	"context"
	"os"

	"github.com/tailspect/tailspect/internal/config"
	"github.com/tailspect/tailspect/internal/ingest"
	"github.com/tailspect/tailspect/internal/recache"
)

// source is one independent ingestion loop. A failing source terminates
// alone; the others and the viewer keep running.
type source struct {
	name string
	run  func(context.Context) error
}

// buildSources wires the configured input kind into pipelines. The returned
// rule is the one whose named filters the viewer exposes: the rule of the
// first source.
func buildSources(cfg config.Config, opts Options, cache *recache.Cache, sink ingest.Appender) ([]source, string, config.Rule, error) {
	switch {
	case len(opts.Exec) > 0:
		rule := cfg.RuleFor(opts.Exec[0])
		outChain, err := chainFor(rule, cache)
		if err != nil {
			return nil, "", rule, err
		}
		errChain, err := chainFor(rule, cache)
		if err != nil {
			return nil, "", rule, err
		}
		stdout := ingest.NewPipeline(outChain, sink, "stdout")
		stderr := ingest.NewPipeline(errChain, sink, "stderr")
		argv := opts.Exec
		return []source{{
			name: argv[0],
			run: func(ctx context.Context) error {
				return ingest.RunCommand(ctx, argv, stdout, stderr)
			},
		}}, joinTitle(argv), rule, nil

	case len(opts.Paths) > 0:
		var sources []source
		for _, path := range opts.Paths {
			rule := cfg.RuleFor(path)
			chain, err := chainFor(rule, cache)
			if err != nil {
				return nil, "", rule, err
			}
			p := ingest.NewPipeline(chain, sink, path)
			sources = append(sources, source{
				name: path,
				run: func(ctx context.Context) error {
					offset, err := p.LoadFile(ctx, path)
					if err != nil {
						return err
					}
					if !opts.Follow || offset < 0 {
						return nil
					}
					return p.Tail(ctx, ingest.TailConfig{
						Path:             path,
						Offset:           offset,
						ReloadOnTruncate: cfg.ReloadOnTruncate,
					})
				},
			})
		}
		return sources, joinTitle(opts.Paths), cfg.RuleFor(opts.Paths[0]), nil

	default:
		rule := cfg.RuleFor("stdin")
		chain, err := chainFor(rule, cache)
		if err != nil {
			return nil, "", rule, err
		}
		p := ingest.NewPipeline(chain, sink, "stdin")
		reader := opts.Stdin
		if reader == nil {
			reader = os.Stdin
		}
		return []source{{
			name: "stdin",
			run: func(ctx context.Context) error {
				return p.Stream(ctx, reader)
			},
		}}, "stdin", rule, nil
	}
}
