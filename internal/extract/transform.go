package extract

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are tried in order when normalizing. Layouts without a
// zone are interpreted as UTC; the syslog layout has no year and borrows the
// current one.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"02/Jan/2006:15:04:05 -0700", // nginx/apache access logs
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// transformExtractor rewrites an already-extracted field to a canonical
// sortable form. Only timestamp normalization to RFC 3339 is supported; a
// missing field or an unparseable value leaves the record untouched.
type transformExtractor struct {
	field string
}

func newTransform(spec string) (Extractor, error) {
	field, format, ok := strings.Cut(spec, " ")
	if !ok || field == "" {
		return nil, fmt.Errorf("transform %q: want \"<field> <format>\"", spec)
	}
	switch format {
	case "iso8601", "rfc3339": // RFC 3339 is the ISO 8601 profile we emit
		return &transformExtractor{field: field}, nil
	default:
		return nil, fmt.Errorf("transform %q: unknown format %q", spec, format)
	}
}

func (e *transformExtractor) Extract(_ string, out Sink) {
	value, ok := out.Peek(e.field)
	if !ok {
		return
	}
	if normalized, ok := toRFC3339(value); ok {
		out.Replace(e.field, normalized)
	}
}

func toRFC3339(value string) (string, bool) {
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "-0700") && !strings.Contains(layout, "Z07:00") {
			t = t.UTC()
		}
		return t.Format(time.RFC3339), true
	}
	// Syslog style "Jan  2 15:04:05" carries no year.
	if t, err := time.Parse(time.Stamp, value); err == nil {
		t = t.AddDate(time.Now().UTC().Year(), 0, 0).UTC()
		return t.Format(time.RFC3339), true
	}
	return "", false
}
