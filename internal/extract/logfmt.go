package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tailspect/tailspect/internal/recache"
)

// logfmtPattern tokenizes key=value pairs. Values may be double-quoted to
// carry embedded spaces; bare tokens without = never match.
const logfmtPattern = `(?P<key>[^ ]*?)=(?P<value>".*?"|[^ ]*)( |$)`

type logfmtExtractor struct {
	re *regexp.Regexp
}

func newLogfmt(cache *recache.Cache) (Extractor, error) {
	re, err := cache.Get(logfmtPattern)
	if err != nil {
		return nil, fmt.Errorf("logfmt: %w", err)
	}
	return &logfmtExtractor{re: re}, nil
}

func (e *logfmtExtractor) Extract(line string, out Sink) {
	for _, m := range e.re.FindAllStringSubmatch(line, -1) {
		key, value := m[1], m[2]
		if key == "" {
			continue
		}
		if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}
		out.Put(key, value)
	}
}
