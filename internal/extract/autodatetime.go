package extract

import (
	"fmt"
	"regexp"

	"github.com/tailspect/tailspect/internal/recache"
)

// autoDatetimePattern recognizes the common machine-readable timestamp shapes
// seen in raw log lines, with optional fractional seconds and zone.
const autoDatetimePattern = `\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?`

// autoDatetimeExtractor scans the raw line for a timestamp substring when no
// earlier extractor has produced a timestamp field.
type autoDatetimeExtractor struct {
	re *regexp.Regexp
}

func newAutoDatetime(cache *recache.Cache) (Extractor, error) {
	re, err := cache.Get(autoDatetimePattern)
	if err != nil {
		return nil, fmt.Errorf("autodatetime: %w", err)
	}
	return &autoDatetimeExtractor{re: re}, nil
}

func (e *autoDatetimeExtractor) Extract(line string, out Sink) {
	if _, ok := out.Peek("timestamp"); ok {
		return
	}
	if m := e.re.FindString(line); m != "" {
		out.Put("timestamp", m)
	}
}
