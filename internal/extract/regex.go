package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tailspect/tailspect/internal/recache"
)

type regexExtractor struct {
	re *regexp.Regexp
}

// newRegex compiles a regex extractor through the shared cache. Named capture
// groups become fields; groups whose names start with "_" match but are not
// emitted.
func newRegex(pattern string, cache *recache.Cache) (Extractor, error) {
	re, err := cache.Get(pattern)
	if err != nil {
		return nil, fmt.Errorf("regex extractor: %w", err)
	}
	return &regexExtractor{re: re}, nil
}

func (e *regexExtractor) Extract(line string, out Sink) {
	m := e.re.FindStringSubmatch(line)
	if m == nil {
		return
	}
	for i, name := range e.re.SubexpNames() {
		if name == "" || strings.HasPrefix(name, "_") {
			continue
		}
		out.Put(name, m[i])
	}
}
