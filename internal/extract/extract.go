package extract

import (
	"fmt"
	"strings"

	"github.com/tailspect/tailspect/internal/recache"
	"github.com/tailspect/tailspect/internal/record"
)

// Sink receives the fields an extractor produces for one line.
type Sink interface {
	// Peek returns the current value of a field set earlier in the chain.
	Peek(key string) (string, bool)
	// Put adds a field, subject to the chain's merge policy.
	Put(key, value string)
	// Replace updates a field unconditionally. Used by transforms, which
	// rewrite values that are already on the record.
	Replace(key, value string)
}

// Extractor derives zero or more named fields from a raw line. A non-matching
// line contributes nothing; extraction never fails per line.
type Extractor interface {
	Extract(line string, out Sink)
}

// MergePolicy decides what happens when two extractors in a chain produce the
// same key.
type MergePolicy int

const (
	// FirstWins keeps the value from the earliest extractor that set the
	// key. This is what makes fallback chains work: two timestamp regexes
	// with different formats can be listed in preference order.
	FirstWins MergePolicy = iota
	// LastWins lets later extractors overwrite earlier values.
	LastWins
)

// Chain runs an ordered list of extractors against each line, merging their
// fields onto one record.
type Chain struct {
	extractors []Extractor
	policy     MergePolicy
}

// NewChain compiles a list of extractor specs ("logfmt", "regex <re>",
// "pattern <template>", "csv", "json", "journal", "autodatetime",
// "transform <field> <format>") into a chain. A malformed spec is a
// configuration error, reported before any line is processed.
func NewChain(specs []string, cache *recache.Cache, policy MergePolicy) (*Chain, error) {
	c := &Chain{policy: policy}
	for _, spec := range specs {
		e, err := newExtractor(spec, cache)
		if err != nil {
			return nil, err
		}
		c.extractors = append(c.extractors, e)
	}
	return c, nil
}

func newExtractor(spec string, cache *recache.Cache) (Extractor, error) {
	kind, rest, _ := strings.Cut(spec, " ")
	switch kind {
	case "logfmt":
		return newLogfmt(cache)
	case "regex":
		if rest == "" {
			return nil, fmt.Errorf("extractor %q: missing regex", spec)
		}
		return newRegex(rest, cache)
	case "pattern":
		if rest == "" {
			return nil, fmt.Errorf("extractor %q: missing template", spec)
		}
		return newPattern(rest, cache)
	case "csv":
		return newCSV(), nil
	case "json":
		return newJSON(), nil
	case "journal":
		return newJournal(cache)
	case "autodatetime":
		return newAutoDatetime(cache)
	case "transform":
		return newTransform(rest)
	case "":
		return nil, fmt.Errorf("empty extractor spec")
	default:
		return nil, fmt.Errorf("unknown extractor %q", kind)
	}
}

// Run applies the chain to line, adding fields to rec under the merge policy.
func (c *Chain) Run(line string, rec *record.Record) {
	out := chainSink{rec: rec, policy: c.policy}
	for _, e := range c.extractors {
		e.Extract(line, out)
	}
}

// Len returns the number of extractors in the chain.
func (c *Chain) Len() int { return len(c.extractors) }

type chainSink struct {
	rec    *record.Record
	policy MergePolicy
}

func (s chainSink) Peek(key string) (string, bool) { return s.rec.Get(key) }

func (s chainSink) Put(key, value string) {
	if s.policy == FirstWins {
		s.rec.SetIfAbsent(key, value)
		return
	}
	s.rec.Set(key, value)
}

func (s chainSink) Replace(key, value string) { s.rec.Set(key, value) }
